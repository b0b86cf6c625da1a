package mapclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/ivost9/incidents-backend/internal/domain"
)

// API is the incident store as seen from the map.
type API interface {
	List(ctx context.Context) ([]domain.Incident, error)
	Create(ctx context.Context, lat, lng float64, description string, media *MediaFile) (*domain.Incident, error)
}

// Client talks to the incident server over its REST surface.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) List(ctx context.Context) ([]domain.Incident, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/incidents", nil)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list incidents: %s", decodeError(resp))
	}

	var incidents []domain.Incident
	if err := json.NewDecoder(resp.Body).Decode(&incidents); err != nil {
		return nil, fmt.Errorf("list incidents: decode: %w", err)
	}
	return incidents, nil
}

// Create submits one report as a single multipart request and returns the
// canonical incident the server persisted.
func (c *Client) Create(ctx context.Context, lat, lng float64, description string, media *MediaFile) (*domain.Incident, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fields := map[string]string{
		"lat":         strconv.FormatFloat(lat, 'f', -1, 64),
		"lng":         strconv.FormatFloat(lng, 'f', -1, 64),
		"description": description,
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("create incident: %w", err)
		}
	}

	if media != nil {
		part, err := mw.CreateFormFile("media", media.Name)
		if err != nil {
			return nil, fmt.Errorf("create incident: %w", err)
		}
		if _, err := part.Write(media.Data); err != nil {
			return nil, fmt.Errorf("create incident: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("create incident: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/incidents", &body)
	if err != nil {
		return nil, fmt.Errorf("create incident: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create incident: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("create incident: %s", decodeError(resp))
	}

	var inc domain.Incident
	if err := json.NewDecoder(resp.Body).Decode(&inc); err != nil {
		return nil, fmt.Errorf("create incident: decode: %w", err)
	}
	return &inc, nil
}

// FetchMedia retrieves a stored attachment verbatim.
func (c *Client) FetchMedia(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch media: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch media: unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func decodeError(resp *http.Response) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Sprintf("%s: %s", resp.Status, payload.Error)
	}
	return resp.Status
}
