package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// LocalDate is a calendar date without a time component. It marshals
// to/from "2006-01-02" in JSON and maps to a SQL DATE column.
type LocalDate struct {
	time.Time
}

const localDateLayout = "2006-01-02"

// NewLocalDate builds a LocalDate from year/month/day
func NewLocalDate(year int, month time.Month, day int) LocalDate {
	return LocalDate{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date
func DateOf(t time.Time) LocalDate {
	return NewLocalDate(t.Year(), t.Month(), t.Day())
}

// String implements fmt.Stringer
func (d LocalDate) String() string {
	return d.Format(localDateLayout)
}

// MarshalJSON implements json.Marshaler
func (d LocalDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(localDateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (d *LocalDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.ParseInLocation(localDateLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Value implements driver.Valuer for GORM
func (d LocalDate) Value() (driver.Value, error) {
	return d.Format(localDateLayout), nil
}

// Scan implements sql.Scanner for GORM
func (d *LocalDate) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	case nil:
		d.Time = time.Time{}
		return nil
	}
	return fmt.Errorf("cannot scan %T into LocalDate", value)
}

func (d *LocalDate) scanString(s string) error {
	t, err := time.ParseInLocation(localDateLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid DATE value %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// StartOfWeek returns the Monday of the week containing t
func StartOfWeek(t time.Time) LocalDate {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the preceding Monday
	}
	monday := t.AddDate(0, 0, 1-weekday)
	return DateOf(monday)
}

// Points is a single day's wellness record for one user. A record is
// always owned by exactly one user once persisted; ID 0 means the
// store has not assigned an identifier yet.
type Points struct {
	ID       uint64    `gorm:"primaryKey;autoIncrement" json:"id,omitempty"`
	Date     LocalDate `gorm:"type:date;index" json:"date" binding:"required"`
	Exercise int       `gorm:"not null;default:0" json:"exercise"`
	Meals    int       `gorm:"not null;default:0" json:"meals"`
	Alcohol  int       `gorm:"not null;default:0" json:"alcohol"`
	UserID   uint64    `gorm:"index" json:"-"`
	User     *User     `json:"user,omitempty"`
}

// TableName sets the table name for GORM
func (Points) TableName() string {
	return "points"
}

// TotalPoints sums the three daily counts
func (p *Points) TotalPoints() int {
	return p.Exercise + p.Meals + p.Alcohol
}

// PointsThisWeek is the derived weekly aggregate for one user. It is
// never persisted.
type PointsThisWeek struct {
	WeekStart LocalDate `json:"weekStart"`
	Points    int       `json:"points"`
}
