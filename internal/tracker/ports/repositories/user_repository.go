// Package repositories определяет интерфейсы хранилища данных.
package repositories

import (
	"context"

	"fittrack/internal/tracker/domain/entities"
)

// UserRepository определяет операции хранилища пользователей и их
// журналов упражнений.
type UserRepository interface {
	// Create сохраняет нового пользователя с пустым журналом.
	Create(ctx context.Context, username string) (*entities.User, error)

	// FindByID возвращает пользователя вместе с журналом упражнений
	// в порядке добавления записей.
	FindByID(ctx context.Context, id string) (*entities.User, error)

	// List возвращает всех пользователей без журналов упражнений.
	List(ctx context.Context) ([]*entities.User, error)

	// AppendExercise добавляет запись в конец журнала пользователя и
	// возвращает обновленного пользователя.
	AppendExercise(ctx context.Context, userID string, exercise entities.Exercise) (*entities.User, error)
}
