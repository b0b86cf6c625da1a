package mapclient

import (
	"testing"

	"github.com/ivost9/incidents-backend/internal/domain"
)

func TestAddIncident_Prepends(t *testing.T) {
	t.Parallel()

	s := State{Incidents: []domain.Incident{{ID: 1}}}
	s = addIncident(s, domain.Incident{ID: 2})

	if len(s.Incidents) != 2 {
		t.Fatalf("expected 2 incidents, got %d", len(s.Incidents))
	}
	if s.Incidents[0].ID != 2 || s.Incidents[1].ID != 1 {
		t.Fatalf("new incident must be topmost: %+v", s.Incidents)
	}
}

func TestAddIncident_DoesNotMutateOld(t *testing.T) {
	t.Parallel()

	old := State{Incidents: []domain.Incident{{ID: 1}}}
	_ = addIncident(old, domain.Incident{ID: 2})

	if len(old.Incidents) != 1 || old.Incidents[0].ID != 1 {
		t.Fatalf("reducer mutated its input: %+v", old.Incidents)
	}
}

func TestSelectMarker_Toggle(t *testing.T) {
	t.Parallel()

	s := State{}
	s = selectMarker(s, 1)
	if s.SelectedID != 1 {
		t.Fatalf("expected selection 1, got %d", s.SelectedID)
	}

	s = selectMarker(s, 1)
	if s.SelectedID != NoSelection {
		t.Fatalf("second click must collapse, got %d", s.SelectedID)
	}
}

func TestSelectMarker_Exclusive(t *testing.T) {
	t.Parallel()

	s := State{}
	s = selectMarker(s, 1)
	s = selectMarker(s, 2)

	if s.SelectedID != 2 {
		t.Fatalf("selecting B after A must leave only B, got %d", s.SelectedID)
	}
}

func TestClearSelection(t *testing.T) {
	t.Parallel()

	s := selectMarker(State{}, 7)
	s = clearSelection(s)

	if s.SelectedID != NoSelection {
		t.Fatalf("expected no selection, got %d", s.SelectedID)
	}
}

func TestRenderMarker_CompactAndExpanded(t *testing.T) {
	t.Parallel()

	url := "http://x/uploads/a.png"
	withMedia := domain.Incident{ID: 1, Lat: 40, Lng: -74, Description: "Pothole", MediaURL: &url}
	noMedia := domain.Incident{ID: 2, Lat: 41, Lng: -73, Description: "Flood"}

	compact := renderMarker(withMedia, false)
	if compact.Expanded || compact.Thumbnail != url || compact.Description != "" {
		t.Fatalf("unexpected compact view: %+v", compact)
	}

	placeholder := renderMarker(noMedia, false)
	if placeholder.Thumbnail != PlaceholderThumb {
		t.Fatalf("expected placeholder thumbnail, got %q", placeholder.Thumbnail)
	}

	expanded := renderMarker(withMedia, true)
	if !expanded.Expanded || expanded.Description != "Pothole" || expanded.MediaURL != url {
		t.Fatalf("unexpected expanded view: %+v", expanded)
	}

	expandedNoMedia := renderMarker(noMedia, true)
	if expandedNoMedia.MediaURL != "" {
		t.Fatalf("expanded view invented media: %+v", expandedNoMedia)
	}
}
