package session

import (
	"log"
	"sync"
)

// TokenStorage — внешнее хранилище токена (файл, secure storage и т.п.).
type TokenStorage interface {
	Load() (string, error)
	Save(token string) error
}

// Store владеет токеном авторизации на время жизни процесса.
// Память — источник истины: ошибки хранилища не мешают работе,
// они только лишают сессию персистентности.
type Store struct {
	mu      sync.RWMutex
	token   string
	storage TokenStorage
}

func NewStore(storage TokenStorage) *Store {
	return &Store{storage: storage}
}

// LoadPersisted читает сохраненный ранее токен. До завершения загрузки
// токен пуст, и авторизованные запросы получат отказ — это ожидаемо.
func (s *Store) LoadPersisted() {
	token, err := s.storage.Load()
	if err != nil {
		log.Printf("Не удалось прочитать сохраненный токен: %v", err)
		return
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Token возвращает текущее значение токена. Сетевые вызовы обязаны
// читать его в момент обращения, а не захватывать копию: логин может
// произойти позже их создания.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken — единственный путь обновления хранилища. Сначала память,
// затем персистентность; ошибка записи логируется и проглатывается.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.storage.Save(token); err != nil {
		log.Printf("Не удалось сохранить токен: %v", err)
	}
}
