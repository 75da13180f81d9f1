package entities

import (
	"errors"
	"time"
)

// Ошибки домена упражнений.
var (
	ErrDescriptionRequired = errors.New("description is a required field")
	ErrDurationRequired    = errors.New("duration is a required field")
	ErrInvalidDuration     = errors.New("duration must be a positive number of minutes")
)

// DateDisplayLayout - формат вывода даты упражнения без времени суток.
const DateDisplayLayout = "Mon Jan 02 2006"

// Exercise представляет одну запись журнала: описание, длительность
// в минутах и календарную дату выполнения.
type Exercise struct {
	Description string
	Duration    int
	Date        time.Time
}

// DisplayDate возвращает дату записи в человекочитаемом виде.
func (e Exercise) DisplayDate() string {
	return e.Date.Format(DateDisplayLayout)
}
