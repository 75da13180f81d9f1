// Package entities содержит доменную модель трекера упражнений.
package entities

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Ошибки домена пользователя.
var (
	ErrUserNotFound      = errors.New("no user was found")
	ErrDuplicateUsername = errors.New("there is already a user with that username")
	ErrUsernameRequired  = errors.New("username is a required field")
	ErrUsernameTooShort  = errors.New("username must be at least 3 characters long")
)

// MinUsernameLength - минимальная длина имени пользователя после обрезки пробелов.
const MinUsernameLength = 3

// User представляет пользователя и принадлежащий ему журнал упражнений.
// Exercises хранится в порядке добавления и только дополняется.
type User struct {
	ID        string
	Username  string
	Exercises []Exercise
	CreatedAt time.Time
}

// ValidateUsername обрезает пробелы и проверяет имя пользователя.
// Возвращает нормализованное имя либо ошибку валидации.
func ValidateUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if username == "" {
		return "", ErrUsernameRequired
	}
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return "", ErrUsernameTooShort
	}
	return username, nil
}
