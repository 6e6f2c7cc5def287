// Package assets provides the domain system for site equipment: maintenance
// ranking by failure probability and the PV digital twin.
package assets

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format of install dates.
const DateLayout = "2006-01-02"

// Type classifies an asset.
type Type string

const (
	TypePV        Type = "pv"
	TypeBattery   Type = "battery"
	TypeInverter  Type = "inverter"
	TypeEVCharger Type = "ev_charger"
	TypeMotor     Type = "motor"
	TypeOther     Type = "other"
)

// characteristic life in years, used by EstimateFailureProbability
var lifetimes = map[Type]float64{
	TypePV:        25,
	TypeBattery:   10,
	TypeInverter:  12,
	TypeEVCharger: 10,
	TypeMotor:     15,
	TypeOther:     15,
}

// Valid reports whether t is a known asset type.
func (t Type) Valid() bool {
	_, ok := lifetimes[t]
	return ok
}

// Asset is a piece of equipment installed at a site.
type Asset struct {
	ID                 uuid.UUID `json:"id"`
	SiteID             uuid.UUID `json:"site_id"`
	Name               string    `json:"name"`
	Type               Type      `json:"type"`
	Model              string    `json:"model"`
	InstallDate        *string   `json:"install_date"`
	FailureProbability float64   `json:"failure_probability"`
	Rank               int       `json:"rank"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CreateCommand contains the data required to create an asset. When
// FailureProbability is omitted it is estimated from type and age.
type CreateCommand struct {
	SiteID             uuid.UUID `json:"site_id"`
	Name               string    `json:"name"`
	Type               Type      `json:"type"`
	Model              string    `json:"model"`
	InstallDate        *string   `json:"install_date"`
	FailureProbability *float64  `json:"failure_probability"`
}

// UpdateCommand contains the data required to update an asset.
type UpdateCommand = CreateCommand

// Validate normalizes the command and fills in the failure probability.
func (c *CreateCommand) Validate(now time.Time) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Model = strings.TrimSpace(c.Model)

	if c.SiteID == uuid.Nil {
		return ErrSiteRequired
	}
	if c.Name == "" {
		return ErrNameRequired
	}
	if !c.Type.Valid() {
		return ErrInvalidType
	}

	var installed *time.Time
	if c.InstallDate != nil && *c.InstallDate != "" {
		d, err := time.Parse(DateLayout, *c.InstallDate)
		if err != nil || d.After(now) {
			return ErrInvalidInstallDate
		}
		installed = &d
	} else {
		c.InstallDate = nil
	}

	if c.FailureProbability != nil {
		p := *c.FailureProbability
		if math.IsNaN(p) || p < 0 || p > 1 {
			return ErrInvalidProbability
		}
		return nil
	}

	p := EstimateFailureProbability(c.Type, installed, now)
	c.FailureProbability = &p
	return nil
}

// installTime returns the parsed install date as a query argument, or nil.
func (c *CreateCommand) installTime() any {
	if c.InstallDate == nil {
		return nil
	}
	d, err := time.Parse(DateLayout, *c.InstallDate)
	if err != nil {
		return nil
	}
	return d
}

// EstimateFailureProbability returns a Weibull (shape 2) failure probability for an
// asset of type t installed at installed. Unknown install dates estimate as new.
func EstimateFailureProbability(t Type, installed *time.Time, now time.Time) float64 {
	if installed == nil {
		return 0
	}
	eta, ok := lifetimes[t]
	if !ok {
		eta = lifetimes[TypeOther]
	}
	age := now.Sub(*installed).Hours() / (24 * 365.25)
	if age <= 0 {
		return 0
	}
	p := 1 - math.Exp(-math.Pow(age/eta, 2))
	return math.Round(p*1000) / 1000
}

// Rank orders assets by failure probability, highest first, breaking ties by
// name, and assigns ranks starting at 1. The input slice is sorted in place.
func Rank(assets []Asset) []Asset {
	slices.SortStableFunc(assets, func(a, b Asset) int {
		switch {
		case a.FailureProbability > b.FailureProbability:
			return -1
		case a.FailureProbability < b.FailureProbability:
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	for i := range assets {
		assets[i].Rank = i + 1
	}
	return assets
}
