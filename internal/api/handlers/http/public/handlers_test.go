package public_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"log/slog"

	"github.com/golang/mock/gomock"

	"github.com/ivost9/incidents-backend/internal/api/handlers/http/public"
	mock_public "github.com/ivost9/incidents-backend/internal/api/handlers/http/public/mocks"
	"github.com/ivost9/incidents-backend/internal/domain"
	"github.com/ivost9/incidents-backend/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

func multipartBody(t *testing.T, fields map[string]string, mediaName string, mediaBytes []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if mediaName != "" {
		part, err := mw.CreateFormFile("media", mediaName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(mediaBytes); err != nil {
			t.Fatalf("write media: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func strptr(s string) *string { return &s }

func TestIncidentList_OK_NewestFirst(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockIncidents(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	t2 := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	t1 := t2.Add(-time.Hour)
	svc.EXPECT().List(gomock.Any()).Return([]domain.Incident{
		{ID: 2, Lat: 41, Lng: -73.5, Description: "Flood", MediaURL: strptr("http://x/uploads/a.png"), Timestamp: t2},
		{ID: 1, Lat: 40, Lng: -74, Description: "Pothole", Timestamp: t1},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/incidents", nil)
	rr := httptest.NewRecorder()

	h.IncidentList(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d, body=%s", rr.Code, rr.Body.String())
	}

	got := decodeJSON[[]map[string]any](t, rr)
	if len(got) != 2 {
		t.Fatalf("expected 2 incidents, got %d", len(got))
	}
	if got[0]["id"].(float64) != 2 || got[1]["id"].(float64) != 1 {
		t.Fatalf("order not preserved: %v", got)
	}
	if got[1]["mediaUrl"] != nil {
		t.Fatalf("expected null mediaUrl, got %v", got[1]["mediaUrl"])
	}
}

func TestIncidentList_StorageError_500(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockIncidents(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	svc.EXPECT().List(gomock.Any()).Return(nil, e.ErrStorageUnavailable)

	rr := httptest.NewRecorder()
	h.IncidentList(rr, httptest.NewRequest(http.MethodGet, "/incidents", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rr.Code)
	}
	got := decodeJSON[map[string]string](t, rr)
	if got["error"] == "" {
		t.Fatalf("expected error payload, got %s", rr.Body.String())
	}
}

func TestIncidentCreate_NoMedia_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockIncidents(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	body, contentType := multipartBody(t, map[string]string{
		"lat":         "40",
		"lng":         "-74",
		"description": "Pothole",
	}, "", nil)

	req := httptest.NewRequest(http.MethodPost, "/incidents", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	want := &domain.Incident{ID: 1, Lat: 40, Lng: -74, Description: "Pothole", Timestamp: time.Now().UTC()}
	svc.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.CreateIncidentRequest) (*domain.Incident, error) {
			if req.Lat != 40 || req.Lng != -74 || req.Description != "Pothole" {
				t.Fatalf("unexpected request: %+v", req)
			}
			if req.Media != nil {
				t.Fatalf("expected no media, got %+v", req.Media)
			}
			return want, nil
		})

	h.IncidentCreate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d, body=%s", rr.Code, rr.Body.String())
	}
	got := decodeJSON[map[string]any](t, rr)
	if got["id"].(float64) != 1 || got["mediaUrl"] != nil {
		t.Fatalf("unexpected response: %v", got)
	}
}

func TestIncidentCreate_WithMedia_BytesReachService(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockIncidents(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	mediaBytes := []byte{1, 2, 3}
	body, contentType := multipartBody(t, map[string]string{
		"lat":         "41.5",
		"lng":         "-73.25",
		"description": "Flood",
	}, "flood.png", mediaBytes)

	req := httptest.NewRequest(http.MethodPost, "/incidents", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	url := "http://localhost:5000/uploads/1_ab.png"
	svc.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.CreateIncidentRequest) (*domain.Incident, error) {
			if req.Media == nil {
				t.Fatalf("expected media upload")
			}
			if req.Media.Filename != "flood.png" {
				t.Fatalf("unexpected filename %q", req.Media.Filename)
			}
			data, err := io.ReadAll(req.Media.Data)
			if err != nil {
				t.Fatalf("read media: %v", err)
			}
			if !bytes.Equal(data, mediaBytes) {
				t.Fatalf("media bytes mangled: %v", data)
			}
			return &domain.Incident{ID: 2, Lat: 41.5, Lng: -73.25, Description: "Flood", MediaURL: &url, Timestamp: time.Now().UTC()}, nil
		})

	h.IncidentCreate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d, body=%s", rr.Code, rr.Body.String())
	}
	got := decodeJSON[map[string]any](t, rr)
	if got["mediaUrl"] != url {
		t.Fatalf("unexpected mediaUrl: %v", got["mediaUrl"])
	}
}

func TestIncidentCreate_MalformedLat_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := public.NewHandler(newTestLogger(), mock_public.NewMockIncidents(ctrl))

	body, contentType := multipartBody(t, map[string]string{
		"lat":         "not-a-number",
		"lng":         "-74",
		"description": "Pothole",
	}, "", nil)

	req := httptest.NewRequest(http.MethodPost, "/incidents", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.IncidentCreate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d, body=%s", rr.Code, rr.Body.String())
	}
}

func TestIncidentCreate_ServiceError_500(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockIncidents(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	body, contentType := multipartBody(t, map[string]string{
		"lat":         "40",
		"lng":         "-74",
		"description": "Pothole",
	}, "", nil)

	req := httptest.NewRequest(http.MethodPost, "/incidents", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, e.ErrStorageUnavailable)

	h.IncidentCreate(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d, body=%s", rr.Code, rr.Body.String())
	}
}
