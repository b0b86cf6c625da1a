package public

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/ivost9/incidents-backend/internal/domain"
)

// 32 MB in memory, bigger uploads spill to temp files.
const maxMultipartMemory = 32 << 20

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Incidents interface {
	List(ctx context.Context) ([]domain.Incident, error)
	Create(ctx context.Context, req domain.CreateIncidentRequest) (*domain.Incident, error)
}

type Handler struct {
	logger    *slog.Logger
	Incidents Incidents
}

func NewHandler(logger *slog.Logger, incidents Incidents) *Handler {
	return &Handler{
		logger:    logger,
		Incidents: incidents,
	}
}

// IncidentList GET /incidents
func (h *Handler) IncidentList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("IncidentList", slog.String("remote", r.RemoteAddr))

	incidents, err := h.Incidents.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("incidents listed", slog.Int("count", len(incidents)))
	h.writeJSON(w, http.StatusOK, incidents)
}

// IncidentCreate POST /incidents, multipart form: lat, lng, description and
// an optional media file.
func (h *Handler) IncidentCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("IncidentCreate", slog.String("remote", r.RemoteAddr))

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		l.Warn("invalid multipart form", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	lat, err := strconv.ParseFloat(r.FormValue("lat"), 64)
	if err != nil {
		l.Warn("invalid lat", slog.String("lat", r.FormValue("lat")))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid input"})
		return
	}
	lng, err := strconv.ParseFloat(r.FormValue("lng"), 64)
	if err != nil {
		l.Warn("invalid lng", slog.String("lng", r.FormValue("lng")))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid input"})
		return
	}

	req := domain.CreateIncidentRequest{
		Lat:         lat,
		Lng:         lng,
		Description: r.FormValue("description"),
	}

	file, header, err := r.FormFile("media")
	switch {
	case err == nil:
		defer file.Close()
		req.Media = &domain.MediaUpload{
			Filename: header.Filename,
			Data:     file,
		}
	case errors.Is(err, http.ErrMissingFile):
		// no attachment, fine
	default:
		l.Warn("invalid media part", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid media part"})
		return
	}

	l.Info("creating incident",
		slog.Float64("lat", req.Lat),
		slog.Float64("lng", req.Lng),
		slog.Bool("has_media", req.Media != nil),
	)

	inc, err := h.Incidents.Create(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("incident created", slog.Int64("id", inc.ID))
	h.writeJSON(w, http.StatusOK, inc)
}
