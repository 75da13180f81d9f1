package entities

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidDateFormat возвращается для границы диапазона, которую
// не удалось разобрать как календарную дату.
var ErrInvalidDateFormat = errors.New("date must be a valid calendar date")

// RangeKind перечисляет варианты диапазона дат фильтра.
type RangeKind int

// Возможные виды диапазона.
const (
	RangeNone RangeKind = iota
	RangeFromOnly
	RangeToOnly
	RangeBoth
)

// DefaultLogLimit применяется, когда limit не задан или не является
// положительным числом.
const DefaultLogLimit = 100

// endOfDay делает границу "to" включительной для записей того же дня.
const endOfDay = 23*time.Hour + 59*time.Minute + 59*time.Second

// Принимаемые форматы входных дат.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	time.RFC3339,
	"January 2, 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2006/01/02",
}

// ParseDate разбирает строку как календарную дату в UTC.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q: %w", value, ErrInvalidDateFormat)
}

// LogFilter описывает диапазон дат и ограничение количества записей
// журнала. Нулевое значение не используется: фильтр строится только
// через NewLogFilter.
type LogFilter struct {
	kind       RangeKind
	from       time.Time
	to         time.Time
	limit      int
	unfiltered bool
}

// NewLogFilter строит фильтр из необработанных параметров запроса.
// Пустые from и to означают отсутствие соответствующей границы;
// невалидная дата - ошибка, а не молча пропущенная граница.
// Невалидный или неположительный limit заменяется значением по
// умолчанию. Если не задан ни один параметр, фильтр помечается
// как Unfiltered.
func NewLogFilter(from, to, limit string) (LogFilter, error) {
	f := LogFilter{kind: RangeNone, limit: DefaultLogLimit}

	if from == "" && to == "" && limit == "" {
		f.unfiltered = true
		return f, nil
	}

	if from != "" {
		t, err := ParseDate(from)
		if err != nil {
			return LogFilter{}, fmt.Errorf("from: %w", err)
		}
		f.from = t
		f.kind = RangeFromOnly
	}

	if to != "" {
		t, err := ParseDate(to)
		if err != nil {
			return LogFilter{}, fmt.Errorf("to: %w", err)
		}
		f.to = startOfDay(t).Add(endOfDay)
		if f.kind == RangeFromOnly {
			f.kind = RangeBoth
		} else {
			f.kind = RangeToOnly
		}
	}

	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		f.limit = n
	}

	return f, nil
}

// startOfDay отбрасывает время суток у границы диапазона, чтобы
// граница всегда покрывала календарный день целиком.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Unfiltered сообщает, что параметры не заданы и журнал возвращается
// целиком без ограничения.
func (f LogFilter) Unfiltered() bool {
	return f.unfiltered
}

// Kind возвращает вид диапазона дат.
func (f LogFilter) Kind() RangeKind {
	return f.kind
}

// Limit возвращает действующее ограничение количества записей.
func (f LogFilter) Limit() int {
	return f.limit
}

// Matches проверяет, попадает ли дата записи в диапазон.
// Обе границы включительные.
func (f LogFilter) Matches(date time.Time) bool {
	switch f.kind {
	case RangeFromOnly:
		return !date.Before(f.from)
	case RangeToOnly:
		return !date.After(f.to)
	case RangeBoth:
		return !date.Before(f.from) && !date.After(f.to)
	default:
		return true
	}
}

// Apply возвращает записи, попавшие в диапазон, не более Limit штук,
// с сохранением исходного порядка.
func (f LogFilter) Apply(entries []Exercise) []Exercise {
	kept := make([]Exercise, 0, len(entries))
	for _, e := range entries {
		if !f.Matches(e.Date) {
			continue
		}
		kept = append(kept, e)
		if len(kept) == f.limit {
			break
		}
	}
	return kept
}
