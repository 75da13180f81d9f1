// Package cache определяет интерфейс кэша.
package cache

import (
	"context"
	"time"
)

// Cache определяет интерфейс для работы с кэшем.
type Cache interface {
	// Get возвращает значение по ключу; отсутствие ключа - пустая
	// строка без ошибки.
	Get(ctx context.Context, key string) (string, error)

	// Set сохраняет значение с указанным временем жизни;
	// нулевой ttl заменяется значением по умолчанию.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Delete удаляет значение по ключу.
	Delete(ctx context.Context, key string) error

	// Close закрывает соединение с кэшем.
	Close() error
}
