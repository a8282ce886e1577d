package extract

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testSession(t *testing.T) *Session {
	t.Helper()
	sess, err := NewSession(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(func() { sess.Cleanup() })
	return sess
}

func TestExtractMissingFile(t *testing.T) {
	sess := testSession(t)
	_, err := Extract(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"), sess)
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	sess := testSession(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Extract(context.Background(), path, sess)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtractCorruptPDF(t *testing.T) {
	sess := testSession(t)
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.7 truncated"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Extract(context.Background(), path, sess)
	if !errors.Is(err, ErrCorruptDocument) {
		t.Errorf("expected ErrCorruptDocument, got %v", err)
	}
}

func TestSessionAssetPathsAreUnique(t *testing.T) {
	sess := testSession(t)

	a := sess.AssetPath("png")
	b := sess.AssetPath("png")
	if a == b {
		t.Errorf("asset paths collide: %s", a)
	}
	if !strings.HasPrefix(a, sess.Dir()) {
		t.Errorf("asset path %s outside session dir %s", a, sess.Dir())
	}
	if filepath.Ext(a) != ".png" {
		t.Errorf("asset path extension = %s", filepath.Ext(a))
	}
}

func TestSessionCleanupRemovesOwnedDir(t *testing.T) {
	sess, err := NewSession(nil)
	if err != nil {
		t.Fatal(err)
	}
	dir := sess.Dir()
	if err := os.WriteFile(sess.AssetPath("png"), []byte{1}, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := sess.Cleanup(); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("session dir still exists after cleanup")
	}
}

func TestSessionInDoesNotRemoveCallerDir(t *testing.T) {
	dir := t.TempDir()
	sess := SessionIn(dir, nil)
	if err := sess.Cleanup(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("caller-supplied dir removed by cleanup")
	}
}
