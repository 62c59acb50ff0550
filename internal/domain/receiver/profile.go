// Package receiver exposes the composting-operation profile the booking
// core consumes. The profile store is external; this core only reads it.
package receiver

import (
	"github.com/google/uuid"
)

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	State        string `json:"state"`
	CityID       string `json:"cityId"`
	PostalCode   string `json:"postalCode,omitempty"`
}

// Profile is a read-only snapshot of a receiver's registration data.
// WeeklyCapacityKg is the live declared capacity; the booking engine
// freezes its own copy per week in the capacity ledger.
type Profile struct {
	ID               uuid.UUID
	Name             string
	WeeklyCapacityKg float64
	Address          Address
	ReceivingDays    []Weekday
	ReceivingWindow  map[Weekday][]TimeWindow
}

// InRegion reports whether the receiver operates in the given state/city.
func (p Profile) InRegion(state, cityID string) bool {
	return p.Address.State == state && p.Address.CityID == cityID
}
