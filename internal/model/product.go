package model

import "math"

type Product struct {
	ID          int64   `json:"id"`
	Stock       int32   `json:"stock"`
	Price       float64 `json:"price"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
}

// RoundPrice normalizes a price to 2 fractional digits so a stored record
// compares equal to what the caller sent after a round trip.
func RoundPrice(p float64) float64 {
	return math.Round(p*100) / 100
}
