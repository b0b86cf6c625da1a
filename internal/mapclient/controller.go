package mapclient

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ivost9/incidents-backend/internal/domain"
	"github.com/ivost9/incidents-backend/pkg/validator"
)

// Notifier surfaces submission failures to the user. Abandoned flows are by
// design silent and never reach it.
type Notifier interface {
	Alert(msg string)
}

// clickPoint bounds a map click to the interaction surface before a creation
// flow may start.
type clickPoint struct {
	Lat float64 `validate:"map_lat"`
	Lng float64 `validate:"lng"`
}

// Controller owns the client-side incident state: the loaded list and the
// single selection. All mutation goes through apply, which runs one pure
// reducer under the lock, so a creation flow resolving late lands its result
// atomically no matter what selection churn happened while it was suspended.
type Controller struct {
	mu    sync.Mutex
	state State

	api      API
	prompter Prompter
	notifier Notifier
	logger   *slog.Logger
}

func NewController(api API, prompter Prompter, notifier Notifier, logger *slog.Logger) *Controller {
	return &Controller{
		api:      api,
		prompter: prompter,
		notifier: notifier,
		logger:   logger,
	}
}

func (c *Controller) apply(reduce func(State) State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = reduce(c.state)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LoadIncidents replaces local state with the store's list, preserving its
// order. On failure the list stays empty; there is no automatic retry.
func (c *Controller) LoadIncidents(ctx context.Context) {
	incidents, err := c.api.List(ctx)
	if err != nil {
		c.logger.Error("load incidents failed", slog.Any("error", err))
		return
	}

	c.apply(func(s State) State { return replaceIncidents(s, incidents) })
	c.logger.Info("incidents loaded", slog.Int("count", len(incidents)))
}

// HandleMapClick handles a pointer click on the map background. It collapses
// any expanded marker first, then walks a creation flow to completion. The
// returned state is the flow's terminal state (FlowAborted covers both user
// abandonment and submit failure; only the latter alerts).
func (c *Controller) HandleMapClick(ctx context.Context, lat, lng float64) FlowState {
	c.apply(clearSelection)

	if err := validator.ValidateStruct(&clickPoint{Lat: lat, Lng: lng}); err != nil {
		c.logger.Warn("click outside map surface",
			slog.Float64("lat", lat),
			slog.Float64("lng", lng),
		)
		return FlowAborted
	}

	flow := newCreationFlow(c.prompter, c.api, lat, lng)
	inc, err := flow.run(ctx)
	if err != nil {
		c.logger.Error("incident submission failed",
			slog.Float64("lat", lat),
			slog.Float64("lng", lng),
			slog.Any("error", err),
		)
		c.notifier.Alert("Failed to submit incident report")
		return flow.State()
	}
	if inc == nil {
		c.logger.Debug("creation flow abandoned", slog.String("state", flow.State().String()))
		return flow.State()
	}

	c.apply(func(s State) State { return addIncident(s, *inc) })
	c.logger.Info("incident added", slog.Int64("id", inc.ID))
	return flow.State()
}

// SelectMarker toggles the selection. A click landing on a marker is
// consumed by the marker: callers must not also route it to HandleMapClick.
func (c *Controller) SelectMarker(id int64) {
	c.apply(func(s State) State { return selectMarker(s, id) })
}

// ClearSelection collapses the expanded marker, if any. The expanded card's
// close control calls this.
func (c *Controller) ClearSelection() {
	c.apply(clearSelection)
}

// RenderMarker produces the visual form of one incident under the current
// selection. At most one incident renders expanded.
func (c *Controller) RenderMarker(inc domain.Incident) MarkerView {
	c.mu.Lock()
	selected := c.state.SelectedID == inc.ID
	c.mu.Unlock()
	return renderMarker(inc, selected)
}
