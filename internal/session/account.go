package session

import "sync"

// AccountState — чистый контейнер состояния счета, без I/O.
// Iban отражает канонический идентификатор счета от сервера,
// refreshAnyway — одноразовый сигнал «обнови принудительно».
type AccountState struct {
	mu            sync.RWMutex
	iban          string
	refreshAnyway bool
}

func NewAccountState() *AccountState {
	return &AccountState{}
}

func (a *AccountState) Iban() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.iban
}

func (a *AccountState) SetIban(iban string) {
	a.mu.Lock()
	a.iban = iban
	a.mu.Unlock()
}

func (a *AccountState) RefreshAnyway() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.refreshAnyway
}

// SetRefreshAnyway поднимает или сбрасывает флаг. Поднятый флаг живет до
// того, как его явно сбросит ровно один следующий потребитель обзора
// счета; никаких таймеров автосброса нет.
func (a *AccountState) SetRefreshAnyway(v bool) {
	a.mu.Lock()
	a.refreshAnyway = v
	a.mu.Unlock()
}
