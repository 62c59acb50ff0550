package appointment

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyState  = errors.New("state is required")
	ErrEmptyCityID = errors.New("city id is required")
	ErrInvalidDate = errors.New("invalid scheduled date")
)

const dateLayout = "2006-01-02"

// Region locates the delivery: a Brazilian state code plus the city id
// from the static city registry.
type Region struct {
	state  string
	cityID string
}

func NewRegion(state, cityID string) (Region, error) {
	state = strings.ToUpper(strings.TrimSpace(state))
	cityID = strings.TrimSpace(cityID)
	if state == "" {
		return Region{}, ErrEmptyState
	}
	if cityID == "" {
		return Region{}, ErrEmptyCityID
	}
	return Region{state: state, cityID: cityID}, nil
}

func (r Region) State() string  { return r.state }
func (r Region) CityID() string { return r.cityID }

// ScheduledDate is a calendar date with no time component.
type ScheduledDate struct {
	value time.Time
}

func NewScheduledDate(t time.Time) ScheduledDate {
	return ScheduledDate{value: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())}
}

func ParseScheduledDate(s string) (ScheduledDate, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return ScheduledDate{}, ErrInvalidDate
	}
	return ScheduledDate{value: t}, nil
}

func (d ScheduledDate) Time() time.Time {
	return d.value
}

func (d ScheduledDate) String() string {
	return d.value.Format(dateLayout)
}

func (d ScheduledDate) IsZero() bool {
	return d.value.IsZero()
}

// Notes is free text the receiver attaches when confirming or flagging.
type Notes struct {
	value string
}

func NewNotes(value string) Notes {
	return Notes{value: strings.TrimSpace(value)}
}

func (n Notes) String() string { return n.value }
func (n Notes) IsEmpty() bool  { return n.value == "" }
