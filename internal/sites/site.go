// Package sites provides the domain system for energy sites: the physical
// locations that own assets, telemetry, alerts, and dispatch strategies.
package sites

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Site is a managed energy installation.
type Site struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Location           string    `json:"location"`
	CapacityKw         float64   `json:"capacity_kw"`
	BatteryCapacityKwh float64   `json:"battery_capacity_kwh"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CreateCommand contains the data required to create a site.
type CreateCommand struct {
	Name               string  `json:"name"`
	Location           string  `json:"location"`
	CapacityKw         float64 `json:"capacity_kw"`
	BatteryCapacityKwh float64 `json:"battery_capacity_kwh"`
}

// UpdateCommand contains the data required to update a site.
type UpdateCommand = CreateCommand

// Validate trims the name and checks capacities.
func (c *CreateCommand) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Location = strings.TrimSpace(c.Location)

	if c.Name == "" {
		return ErrNameRequired
	}
	if c.CapacityKw < 0 || c.BatteryCapacityKwh < 0 {
		return ErrInvalidCapacity
	}
	return nil
}
