package mapclient

import "github.com/ivost9/incidents-backend/internal/domain"

// PlaceholderThumb backs compact markers whose incident carries no media.
const PlaceholderThumb = "https://via.placeholder.com/40"

// MarkerView is what a renderer needs to draw one marker. Exactly one of the
// two visual forms applies: compact (thumbnail glyph) or expanded (detail
// card with description, full media and a close control).
type MarkerView struct {
	ID       int64
	Lat      float64
	Lng      float64
	Expanded bool

	// compact form
	Thumbnail string

	// expanded form
	Description string
	MediaURL    string
}

// renderMarker is a pure function of the incident and its selection.
func renderMarker(inc domain.Incident, selected bool) MarkerView {
	v := MarkerView{
		ID:       inc.ID,
		Lat:      inc.Lat,
		Lng:      inc.Lng,
		Expanded: selected,
	}

	if !selected {
		v.Thumbnail = PlaceholderThumb
		if inc.MediaURL != nil {
			v.Thumbnail = *inc.MediaURL
		}
		return v
	}

	v.Description = inc.Description
	if inc.MediaURL != nil {
		v.MediaURL = *inc.MediaURL
	}
	return v
}
