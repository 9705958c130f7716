package session

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

// FileStorage хранит токен одной строкой в обычном файле.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load возвращает пустой токен без ошибки, если файла еще нет:
// первый запуск — это не сбой.
func (f *FileStorage) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileStorage) Save(token string) error {
	return os.WriteFile(f.path, []byte(token), 0600)
}
