// Package week maps calendar dates to ISO-8601 weeks. Weekly capacity
// ledgers are keyed by the (year, week) pair produced here, so every
// component that needs to know "which week does this delivery land in"
// goes through this package and nothing else.
package week

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Info identifies one ISO-8601 week. Year is the ISO week-year, which near
// year boundaries can differ from the calendar year of the date that
// produced it (2024-12-30 belongs to week 1 of 2025).
type Info struct {
	Year   int
	Number int
	Start  time.Time
}

// At returns the ISO week containing date. Start is the Monday at midnight
// in date's location.
func At(date time.Time) Info {
	year, number := date.ISOWeek()

	// Monday=0 ... Sunday=6
	back := (int(date.Weekday()) + 6) % 7
	monday := date.AddDate(0, 0, -back)
	start := time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, date.Location())

	return Info{
		Year:   year,
		Number: number,
		Start:  start,
	}
}

// Key renders the ledger document key for a receiver in this week.
func (i Info) Key(receiverID uuid.UUID) string {
	return fmt.Sprintf("%s_%d-%d", receiverID, i.Year, i.Number)
}

// End returns the exclusive end of the week (the next Monday at midnight).
func (i Info) End() time.Time {
	return i.Start.AddDate(0, 0, 7)
}

// Contains reports whether t falls inside this week.
func (i Info) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End())
}
