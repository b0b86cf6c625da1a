package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ivost9/incidents-backend/pkg/e"

	"github.com/google/uuid"
)

// Store keeps uploaded media as flat files in one directory. Files are
// write-once: nothing ever modifies or removes them.
type Store struct {
	dir     string
	baseURL string
	logger  *slog.Logger
}

func NewStore(dir, baseURL string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, e.Wrap("storage.media.NewStore.MkdirAll", err)
	}
	return &Store{dir: dir, baseURL: baseURL, logger: logger}, nil
}

// Save writes the upload under a fresh name and returns its externally
// reachable URL. The original filename contributes only its extension; the
// stored name combines submission time with a random suffix so concurrent
// uploads in the same millisecond cannot collide.
func (s *Store) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	const op = "storage.media.Save"

	if err := ctx.Err(); err != nil {
		return "", e.WrapError(ctx, op, err)
	}

	name := fmt.Sprintf("%d_%s%s",
		time.Now().UnixMilli(),
		uuid.NewString()[:8],
		filepath.Ext(filename),
	)

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		s.logger.Error("media open failed", slog.String("op", op), slog.Any("error", err))
		return "", fmt.Errorf("%s: %w", op, e.ErrMediaWrite)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		s.logger.Error("media write failed", slog.String("op", op), slog.String("name", name), slog.Any("error", err))
		return "", fmt.Errorf("%s: %w", op, e.ErrMediaWrite)
	}
	if err := f.Close(); err != nil {
		s.logger.Error("media close failed", slog.String("op", op), slog.String("name", name), slog.Any("error", err))
		return "", fmt.Errorf("%s: %w", op, e.ErrMediaWrite)
	}

	url := s.baseURL + "/uploads/" + name
	s.logger.Debug("media stored", slog.String("name", name), slog.String("url", url))
	return url, nil
}

// Dir is the directory the HTTP file server exposes under /uploads.
func (s *Store) Dir() string {
	return s.dir
}
