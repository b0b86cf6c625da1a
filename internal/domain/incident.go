package domain

import (
	"time"
)

// Incident is a geolocated report. Rows are append-only: once created an
// incident is never updated or deleted.
type Incident struct {
	ID          int64     `json:"id"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Description string    `json:"description"`
	MediaURL    *string   `json:"mediaUrl"`
	Timestamp   time.Time `json:"timestamp"`
}
