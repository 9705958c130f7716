package session

import (
	"errors"
	"testing"
)

// fakeStorage подменяет файловое хранилище в тестах.
type fakeStorage struct {
	token   string
	loadErr error
	saveErr error
	saved   []string
}

func (f *fakeStorage) Load() (string, error) {
	return f.token, f.loadErr
}

func (f *fakeStorage) Save(token string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, token)
	return nil
}

func TestStoreTokenEmptyBeforeLoad(t *testing.T) {
	store := NewStore(&fakeStorage{token: "persisted-token"})

	if got := store.Token(); got != "" {
		t.Errorf("Token() до загрузки = %q, ожидалась пустая строка", got)
	}
}

func TestStoreLoadPersisted(t *testing.T) {
	store := NewStore(&fakeStorage{token: "persisted-token"})

	store.LoadPersisted()

	if got := store.Token(); got != "persisted-token" {
		t.Errorf("Token() = %q, ожидалось %q", got, "persisted-token")
	}
}

func TestStoreLoadPersistedErrorKeepsEmptyToken(t *testing.T) {
	store := NewStore(&fakeStorage{loadErr: errors.New("disk failure")})

	store.LoadPersisted()

	if got := store.Token(); got != "" {
		t.Errorf("Token() после ошибки загрузки = %q, ожидалась пустая строка", got)
	}
}

func TestStoreSetTokenPersists(t *testing.T) {
	storage := &fakeStorage{}
	store := NewStore(storage)

	store.SetToken("fresh-token")

	if got := store.Token(); got != "fresh-token" {
		t.Errorf("Token() = %q, ожидалось %q", got, "fresh-token")
	}
	if len(storage.saved) != 1 || storage.saved[0] != "fresh-token" {
		t.Errorf("в хранилище записано %v, ожидалось [fresh-token]", storage.saved)
	}
}

func TestStoreSetTokenSaveErrorKeepsMemory(t *testing.T) {
	store := NewStore(&fakeStorage{saveErr: errors.New("disk full")})

	store.SetToken("fresh-token")

	if got := store.Token(); got != "fresh-token" {
		t.Errorf("Token() после ошибки записи = %q, память обязана сохранить токен", got)
	}
}

func TestFileStorageMissingFile(t *testing.T) {
	storage := NewFileStorage(t.TempDir() + "/token.dat")

	token, err := storage.Load()
	if err != nil {
		t.Fatalf("Load() для отсутствующего файла вернул ошибку: %v", err)
	}
	if token != "" {
		t.Errorf("Load() = %q, ожидалась пустая строка", token)
	}
}

func TestFileStorageRoundTrip(t *testing.T) {
	storage := NewFileStorage(t.TempDir() + "/token.dat")

	if err := storage.Save("abc123"); err != nil {
		t.Fatalf("Save() вернул ошибку: %v", err)
	}

	token, err := storage.Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	if token != "abc123" {
		t.Errorf("Load() = %q, ожидалось %q", token, "abc123")
	}
}
