package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
	_ "time/tzdata" // Loc must resolve zones on hosts without tzdata
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Business is a service provider that publishes offerings against a weekly schedule.
type Business struct {
	ID             uuid.UUID
	OwnerAccountID uuid.UUID
	Sign           string
	Name           string
	Currency       string
	TimeZone       string
	Location       string
	Latitude       float64
	Longitude      float64
	IsActive       bool
	Version        int64

	Offerings []Offering
	Schedule  []ScheduleEntry

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Loc returns the business time zone, falling back to UTC.
func (b *Business) Loc() *time.Location {
	if b.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(b.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsOwnedBy reports whether accountID owns the business.
func (b *Business) IsOwnedBy(accountID uuid.UUID) bool {
	return b.OwnerAccountID == accountID
}

// ScheduleFor returns the entry for the weekday, if any.
func (b *Business) ScheduleFor(day time.Weekday) (ScheduleEntry, bool) {
	for _, e := range b.Schedule {
		if e.DayOfWeek == day {
			return e, true
		}
	}
	return ScheduleEntry{}, false
}

// OfferingType tags the kind of offering
type OfferingType string

const (
	OfferingTypeGenesis OfferingType = "genesis"
)

// Offering is a bookable service definition ("block").
type Offering struct {
	ID          uuid.UUID
	BusinessID  uuid.UUID
	Type        OfferingType
	Price       int64
	Duration    time.Duration
	Title       string
	Description string
	Image       *string
	Index       int
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (o *Offering) IsDeleted() bool {
	return o.DeletedAt != nil
}

// ScheduleEntry opening hours for one weekday.
type ScheduleEntry struct {
	DayOfWeek time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
}

// BlockedPeriod is an explicitly closed interval ("time block").
type BlockedPeriod struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Title      string
	Range      TimeRange
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizeSign trims and lowercases the sign and checks its shape.
func NormalizeSign(sign string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(sign))
	n := utf8.RuneCountInString(s)
	if n < MinSignLength || n > MaxSignLength {
		return "", NewValidationError(fmt.Sprintf("sign must be between %d and %d characters", MinSignLength, MaxSignLength))
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return "", NewValidationError("sign must not contain whitespace")
	}
	return s, nil
}

// NormalizeName trims the name and checks its length.
func NormalizeName(name string) (string, error) {
	s := strings.TrimSpace(name)
	n := utf8.RuneCountInString(s)
	if n < MinNameLength || n > MaxNameLength {
		return "", NewValidationError(fmt.Sprintf("name must be between %d and %d characters", MinNameLength, MaxNameLength))
	}
	return s, nil
}

// ValidateOffering checks a single offering.
func ValidateOffering(o Offering) error {
	if o.Type != OfferingTypeGenesis {
		return NewValidationError(fmt.Sprintf("unsupported offering type %q", o.Type))
	}
	if err := ValidatePrice(o.Price); err != nil {
		return err
	}
	if o.Duration <= 0 {
		return NewValidationError("duration must be positive")
	}
	if strings.TrimSpace(o.Title) == "" {
		return NewValidationError("title is required")
	}
	if utf8.RuneCountInString(o.Title) > MaxTitleLength {
		return NewValidationError(fmt.Sprintf("title must be at most %d characters", MaxTitleLength))
	}
	if strings.TrimSpace(o.Description) == "" {
		return NewValidationError("description is required")
	}
	return nil
}

// NormalizeOfferings validates the live offerings of a business after a
// mutation, sorts them by index and rewrites the index as 0..N-1.
// Deleted offerings are ignored.
func NormalizeOfferings(offerings []Offering) ([]Offering, error) {
	live := make([]Offering, 0, len(offerings))
	for _, o := range offerings {
		if !o.IsDeleted() {
			live = append(live, o)
		}
	}

	if len(live) < MinOfferings || len(live) > MaxOfferings {
		return nil, NewValidationError(fmt.Sprintf("a business must have between %d and %d offerings", MinOfferings, MaxOfferings))
	}

	sort.SliceStable(live, func(i, j int) bool { return live[i].Index < live[j].Index })

	for i := range live {
		live[i].Index = i
		if err := ValidateOffering(live[i]); err != nil {
			return nil, err
		}
	}

	return live, nil
}

// ValidateSchedule checks hours and rejects duplicate weekdays.
func ValidateSchedule(entries []ScheduleEntry) error {
	seen := make(map[time.Weekday]struct{}, len(entries))
	for _, e := range entries {
		if e.DayOfWeek < time.Sunday || e.DayOfWeek > time.Saturday {
			return NewValidationError(fmt.Sprintf("invalid day of week %d", e.DayOfWeek))
		}
		if !e.StartTime.IsBefore(e.EndTime) {
			return NewValidationError(fmt.Sprintf("schedule for %s: start time must be before end time", e.DayOfWeek))
		}
		if _, ok := seen[e.DayOfWeek]; ok {
			return NewValidationError(fmt.Sprintf("duplicate schedule for %s", e.DayOfWeek))
		}
		seen[e.DayOfWeek] = struct{}{}
	}
	return nil
}

// ValidateBlockedPeriod requires a title and a non-empty range.
func ValidateBlockedPeriod(p BlockedPeriod) error {
	if strings.TrimSpace(p.Title) == "" {
		return NewValidationError("title is required")
	}
	if !p.Range.Start.Before(p.Range.End) {
		return ErrInvalidRange
	}
	return nil
}
