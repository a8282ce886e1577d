package qrgen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// Encoder writes QR code PNGs into a directory, one uniquely named file
// per call.
type Encoder struct {
	dir string
}

// NewEncoder creates an encoder writing into dir, creating it if needed.
func NewEncoder(dir string) (*Encoder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating qr directory: %w", err)
	}
	return &Encoder{dir: dir}, nil
}

// Encode renders the payload as a QR PNG of sizePx pixels and returns
// the written file's path. Medium error correction keeps codes scannable
// after print and rescan.
func (e *Encoder) Encode(payload string, sizePx int) (string, error) {
	if sizePx <= 0 {
		sizePx = 256
	}
	path := filepath.Join(e.dir, uuid.NewString()+".png")
	if err := qrcode.WriteFile(payload, qrcode.Medium, sizePx, path); err != nil {
		return "", fmt.Errorf("encoding qr payload: %w", err)
	}
	return path, nil
}
