package mapclient

import (
	"context"

	"github.com/ivost9/incidents-backend/internal/domain"
)

type FlowState int

const (
	FlowIdle FlowState = iota
	FlowConfirming
	FlowDescribing
	FlowAttachingMedia
	FlowSubmitting
	FlowDone
	FlowAborted
)

func (s FlowState) String() string {
	switch s {
	case FlowIdle:
		return "idle"
	case FlowConfirming:
		return "confirming"
	case FlowDescribing:
		return "describing"
	case FlowAttachingMedia:
		return "attaching_media"
	case FlowSubmitting:
		return "submitting"
	case FlowDone:
		return "done"
	case FlowAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// MediaFile is a picked attachment, fully read before submission.
type MediaFile struct {
	Name string
	Data []byte
}

// Prompter is the environment side of the creation flow. Each call is a
// suspension point: it blocks until the user answers or walks away.
// Describe returns "" and AttachMedia returns nil on cancel; AttachMedia
// returning nil is also the ordinary "no file chosen" answer, which does not
// abort the flow.
type Prompter interface {
	Confirm(ctx context.Context, lat, lng float64) (bool, error)
	Describe(ctx context.Context) (string, error)
	AttachMedia(ctx context.Context) (*MediaFile, error)
}

// creationFlow walks one report submission through its states:
//
//	Idle → Confirming → Describing → AttachingMedia → Submitting → Done
//
// with any prompt able to short-circuit to Aborted. An abort has zero side
// effects: no request is sent, nothing is added anywhere. Once Submitting is
// entered the request is not cancellable; run only returns after it resolves.
type creationFlow struct {
	prompter Prompter
	api      API
	lat, lng float64
	state    FlowState
}

func newCreationFlow(prompter Prompter, api API, lat, lng float64) *creationFlow {
	return &creationFlow{
		prompter: prompter,
		api:      api,
		lat:      lat,
		lng:      lng,
		state:    FlowIdle,
	}
}

func (f *creationFlow) State() FlowState {
	return f.state
}

// run executes the flow to a terminal state. A nil, nil result means the
// user abandoned the flow; that is not an error.
func (f *creationFlow) run(ctx context.Context) (*domain.Incident, error) {
	f.state = FlowConfirming
	ok, err := f.prompter.Confirm(ctx, f.lat, f.lng)
	if err != nil || !ok {
		f.state = FlowAborted
		return nil, nil
	}

	f.state = FlowDescribing
	description, err := f.prompter.Describe(ctx)
	if err != nil || description == "" {
		f.state = FlowAborted
		return nil, nil
	}

	f.state = FlowAttachingMedia
	media, err := f.prompter.AttachMedia(ctx)
	if err != nil {
		f.state = FlowAborted
		return nil, nil
	}

	f.state = FlowSubmitting
	inc, err := f.api.Create(ctx, f.lat, f.lng, description, media)
	if err != nil {
		f.state = FlowAborted
		return nil, err
	}

	f.state = FlowDone
	return inc, nil
}
