package domain

import "io"

// MediaUpload is the optional attachment of a creation request. Filename is
// only used for its extension; the stored name is generated server-side.
type MediaUpload struct {
	Filename string
	Data     io.Reader
}

// CreateIncidentRequest carries a parsed submission. Coordinates are taken
// as given: the map surface bounds what a client can click, the store does
// not re-check ranges.
type CreateIncidentRequest struct {
	Lat         float64
	Lng         float64
	Description string `validate:"required"`
	Media       *MediaUpload
}
