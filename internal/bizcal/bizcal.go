package bizcal

import (
	"errors"
	"strings"
	"time"

	"github.com/velozity/opsboard/internal/config"
	"go.uber.org/fx"
)

// DateLayout is the canonical calendar-date format used across the service.
const DateLayout = "2006-01-02"

// Module provides the business calendar.
var Module = fx.Module("bizcal",
	fx.Provide(New),
)

var ErrInvalidDate = errors.New("invalid_date")

// Calendar resolves dates in the fixed business time zone rather than the
// server's local zone.
type Calendar struct {
	loc *time.Location
}

func New(cfg config.Config) (*Calendar, error) {
	loc, err := time.LoadLocation(cfg.BusinessTimeZone)
	if err != nil {
		return nil, err
	}
	return &Calendar{loc: loc}, nil
}

// NewInZone builds a calendar for an explicit zone. Used by tests.
func NewInZone(name string) (*Calendar, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	return &Calendar{loc: loc}, nil
}

func (c *Calendar) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today returns the current business-calendar date.
func (c *Calendar) Today() string {
	return c.Now().Format(DateLayout)
}

// Monday normalizes any date within a week to that week's canonical Monday.
func (c *Calendar) Monday(date string) (string, error) {
	parsed, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	offset := (int(parsed.Weekday()) + 6) % 7
	return parsed.AddDate(0, 0, -offset).Format(DateLayout), nil
}

// ThisMonday returns the canonical Monday of the current business week.
func (c *Calendar) ThisMonday() string {
	monday, _ := c.Monday(c.Today())
	return monday
}

// ParseDate parses a canonical YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, ErrInvalidDate
	}
	parsed, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

// IsDate reports whether value is a canonical YYYY-MM-DD date string.
func IsDate(value string) bool {
	_, err := ParseDate(value)
	return err == nil
}
