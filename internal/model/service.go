package model

import "time"

type PricingModel string

const (
	PricingFixed        PricingModel = "Fixed"
	PricingHourly       PricingModel = "Hourly"
	PricingProjectBased PricingModel = "Project-based"
	PricingCustom       PricingModel = "Custom"
)

func ValidPricingModel(p PricingModel) bool {
	switch p {
	case PricingFixed, PricingHourly, PricingProjectBased, PricingCustom:
		return true
	}
	return false
}

type Pricing struct {
	StartingPrice float64      `json:"startingPrice,omitempty"`
	Currency      string       `json:"currency"`
	PricingModel  PricingModel `json:"pricingModel"`
}

type Service struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Icon             string    `json:"icon"`
	Image            string    `json:"image,omitempty"`
	Features         []string  `json:"features"`
	Pricing          Pricing   `json:"pricing"`
	BookingAvailable bool      `json:"bookingAvailable"`
	Popular          bool      `json:"popular"`
	Order            int       `json:"order"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
