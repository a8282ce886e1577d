package extract

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Session owns the scratch directory one extraction run writes its
// assets into. Each run gets a unique directory, so several documents
// can be processed at once without filename collisions.
type Session struct {
	dir   string
	owned bool
	log   *slog.Logger
}

// NewSession creates a scratch directory under the system temp dir.
func NewSession(logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dir, err := os.MkdirTemp("", "semcolar-"+uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}
	logger.Debug("extraction session started", "dir", dir)
	return &Session{dir: dir, owned: true, log: logger}, nil
}

// SessionIn uses an existing directory instead of a fresh temp one.
// Cleanup then leaves the directory in place.
func SessionIn(dir string, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{dir: dir, log: logger}
}

// Dir returns the session's scratch directory.
func (s *Session) Dir() string {
	return s.dir
}

// Logger returns the session's logger.
func (s *Session) Logger() *slog.Logger {
	return s.log
}

// AssetPath returns a fresh uniquely named path inside the session
// directory for an extracted asset, e.g. AssetPath("png").
func (s *Session) AssetPath(ext string) string {
	return filepath.Join(s.dir, uuid.NewString()+"."+ext)
}

// Cleanup removes the session directory and everything in it. Sessions
// created over a caller-supplied directory are left in place.
func (s *Session) Cleanup() error {
	if s.dir == "" || !s.owned {
		return nil
	}
	s.log.Debug("extraction session cleaned up", "dir", s.dir)
	return os.RemoveAll(s.dir)
}
