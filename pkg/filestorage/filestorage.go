// Файл: pkg/filestorage/filestorage.go

package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStorageInterface определяет контракт для сервиса хранения файлов.
// Сервисы сами выбирают относительный путь (attachments/..., terms/...),
// хранилище отвечает только за запись и удаление.
type FileStorageInterface interface {
	Save(file io.Reader, relativePath string) (string, error)
	Delete(relativePath string) error
}

type LocalFileStorage struct {
	basePath string
}

func NewLocalFileStorage(basePath string) (FileStorageInterface, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию для хранения файлов: %w", err)
		}
	}
	return &LocalFileStorage{basePath: basePath}, nil
}

func (s *LocalFileStorage) Save(file io.Reader, relativePath string) (string, error) {
	relativePath = filepath.ToSlash(filepath.Clean(relativePath))
	if strings.HasPrefix(relativePath, "..") {
		return "", fmt.Errorf("недопустимый путь файла: %s", relativePath)
	}

	fullPath := filepath.Join(s.basePath, filepath.FromSlash(relativePath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", err
	}

	// При коллизии имён дописываем короткий uuid-суффикс вместо перезаписи.
	if _, err := os.Stat(fullPath); err == nil {
		ext := filepath.Ext(relativePath)
		base := strings.TrimSuffix(relativePath, ext)
		relativePath = fmt.Sprintf("%s_%s%s", base, uuid.New().String()[:8], ext)
		fullPath = filepath.Join(s.basePath, filepath.FromSlash(relativePath))
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", err
	}

	return relativePath, nil
}

func (s *LocalFileStorage) Delete(relativePath string) error {
	// Путь может прийти как "/uploads/attachments/..." (публичный URL)
	// или как "attachments/..." (как в БД). Отсекаем префикс URL.
	relativePath = strings.TrimPrefix(relativePath, "/uploads/")

	fullPath := filepath.Join(s.basePath, filepath.FromSlash(relativePath))

	// Если файла и так нет, считаем операцию успешной.
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}

	return os.Remove(fullPath)
}
