// Package api определяет интерфейсы вариантов использования.
package api

import (
	"context"

	"fittrack/internal/tracker/domain/entities"
)

// UserLog - результат запроса журнала: идентификация пользователя и
// отфильтрованное представление его записей. Count считается по
// правилам ответа, а не всегда по длине Exercises: без параметров
// фильтрации это полный размер журнала.
type UserLog struct {
	ID        string              `json:"_id"`
	Username  string              `json:"username"`
	Count     int                 `json:"count"`
	Exercises []entities.Exercise `json:"exercises"`
}

// UserUseCase определяет операции над пользователями и их журналами.
type UserUseCase interface {
	// Register создает пользователя по имени.
	Register(ctx context.Context, username string) (*entities.User, error)

	// List возвращает всех пользователей без журналов.
	List(ctx context.Context) ([]*entities.User, error)

	// AppendExercise разбирает поля формы, добавляет запись в журнал
	// пользователя и возвращает обновленного пользователя. Пустая дата
	// заменяется текущим моментом.
	AppendExercise(ctx context.Context, userID, description, duration, date string) (*entities.User, error)
}

// LogUseCase определяет чтение журнала с фильтрацией по датам.
type LogUseCase interface {
	// GetUserLog возвращает журнал пользователя, отфильтрованный по
	// необязательным границам from/to и ограниченный limit записями.
	GetUserLog(ctx context.Context, userID, from, to, limit string) (*UserLog, error)
}
