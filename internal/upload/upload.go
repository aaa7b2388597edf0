// Package upload gatekeeps which files may be submitted for prediction.
//
// A selected file becomes a Pending upload only after passing the image-type
// and size checks. Preview rendering is a separate, independently scheduled
// step (see preview.go); every accepted or cleared selection bumps a
// generation counter so a late-arriving preview for a superseded file can be
// recognized and dropped.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// MaxFileSize is the largest accepted image, in bytes (5 MiB).
const MaxFileSize = 5 * 1024 * 1024

var (
	// ErrInvalidFileType rejects files whose content is not an image.
	ErrInvalidFileType = errors.New("Please select an image file (JPEG, PNG, etc.)")
	// ErrFileTooLarge rejects images above MaxFileSize.
	ErrFileTooLarge = errors.New("File is too large. Maximum file size is 5MB.")
	// ErrNoFileSelected reports a submission attempt with nothing selected.
	ErrNoFileSelected = errors.New("Please select an image to analyze")
)

// Pending is the user's currently selected, not-yet-submitted image.
type Pending struct {
	Path     string
	Name     string
	MIMEType string
	Size     int64
	Data     []byte

	// Generation identifies which selection this upload (and any preview
	// derived from it) belongs to.
	Generation int
}

// Validator validates candidate files and tracks the pending upload. All
// entry points (file picker, drag-in path, CLI argument) go through Accept
// and receive identical validation.
type Validator struct {
	mu         sync.Mutex
	pending    *Pending
	generation int
}

// Accept validates the file at path and replaces the pending upload on
// success. An empty path represents user cancellation: it clears any pending
// upload and returns (nil, nil). On a validation failure the previous pending
// state is left untouched.
func (v *Validator) Accept(path string) (*Pending, error) {
	if strings.TrimSpace(path) == "" {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.pending = nil
		v.generation++
		return nil, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	mimeType, err := detectMIME(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrInvalidFileType
	}
	if info.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.generation++
	v.pending = &Pending{
		Path:       path,
		Name:       filepath.Base(path),
		MIMEType:   mimeType,
		Size:       info.Size(),
		Data:       data,
		Generation: v.generation,
	}
	return v.pending, nil
}

// Current returns the pending upload, or nil when none is selected.
func (v *Validator) Current() *Pending {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending
}

// Latest reports whether gen still identifies the most recent selection.
// Preview tasks use it to discard stale results.
func (v *Validator) Latest(gen int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return gen == v.generation
}

// Submit hands off the pending upload for transmission and discards it, so a
// new selection is required before the next submission. It fails with
// ErrNoFileSelected when nothing valid is pending; callers surface that as a
// validation message instead of issuing a network call.
func (v *Validator) Submit() (*Pending, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pending == nil {
		return nil, ErrNoFileSelected
	}
	p := v.pending
	v.pending = nil
	// The handoff also retires any preview still being derived for it.
	v.generation++
	return p, nil
}

// detectMIME sniffs the file content, falling back to the extension for
// formats the sniffer does not know.
func detectMIME(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read file: %w", err)
	}

	sniffed := http.DetectContentType(head[:n])
	if sniffed != "application/octet-stream" {
		// Drop any parameters ("text/plain; charset=utf-8").
		if i := strings.Index(sniffed, ";"); i >= 0 {
			sniffed = strings.TrimSpace(sniffed[:i])
		}
		return sniffed, nil
	}

	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		if i := strings.Index(byExt, ";"); i >= 0 {
			byExt = strings.TrimSpace(byExt[:i])
		}
		return byExt, nil
	}
	return sniffed, nil
}
