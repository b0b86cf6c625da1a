package mapclient

import "github.com/ivost9/incidents-backend/internal/domain"

// NoSelection is the zero SelectedID; server ids start at 1.
const NoSelection int64 = 0

// State is the controller's whole view of the world: the loaded incidents in
// display order (newest first) and the id of the one expanded marker, if any.
// Values are immutable; reducers below return a fresh State.
type State struct {
	Incidents  []domain.Incident
	SelectedID int64
}

func replaceIncidents(s State, incidents []domain.Incident) State {
	s.Incidents = incidents
	return s
}

// addIncident prepends: the server hands back newest-first lists, so a fresh
// creation belongs at the top without any re-sort.
func addIncident(s State, inc domain.Incident) State {
	next := make([]domain.Incident, 0, len(s.Incidents)+1)
	next = append(next, inc)
	next = append(next, s.Incidents...)
	s.Incidents = next
	return s
}

// selectMarker toggles: selecting the already selected id collapses it.
func selectMarker(s State, id int64) State {
	if s.SelectedID == id {
		s.SelectedID = NoSelection
	} else {
		s.SelectedID = id
	}
	return s
}

func clearSelection(s State) State {
	s.SelectedID = NoSelection
	return s
}
