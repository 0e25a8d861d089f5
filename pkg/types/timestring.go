package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const timeStringLayout = "15:04"

// ErrInvalidTimeString некорректная строка времени
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString время суток с точностью до минуты ("HH:MM")
type TimeString struct {
	minutes int
}

// NewTimeString создает TimeString из часов и минут time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute()}
}

// NewTimeStringFromString парсит строку "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeStringLayout, s)
	if err != nil {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// MustTimeString парсит строку и паникует при ошибке. Только для констант и тестов
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// Hour часы
func (t TimeString) Hour() int { return t.minutes / 60 }

// Minute минуты
func (t TimeString) Minute() int { return t.minutes % 60 }

// Minutes минут от полуночи
func (t TimeString) Minutes() int { return t.minutes }

func (t TimeString) IsBefore(other TimeString) bool { return t.minutes < other.minutes }

func (t TimeString) IsAfter(other TimeString) bool { return t.minutes > other.minutes }

func (t TimeString) IsZero() bool { return t.minutes == 0 }

// On возвращает момент времени в указанный день в его часовом поясе
func (t TimeString) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, date.Location())
}

func (t TimeString) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeString) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value сохраняем в колонку TIME как "HH:MM:00"
func (t TimeString) Value() (driver.Value, error) {
	return t.String() + ":00", nil
}

// Scan читает TIME из postgres (lib/pq отдаёт time.Time или строку)
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	case nil:
		*t = TimeString{}
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	if len(s) >= 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
