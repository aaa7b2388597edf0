package upload

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeImage encodes a small solid image at path in the given format, then
// pads the file with trailing bytes until it reaches at least minSize. The
// padding keeps the magic bytes intact, so content sniffing still sees an
// image.
func writeImage(t *testing.T, path, format string, minSize int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	default:
		t.Fatalf("unknown format %q", format)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", format, err)
	}
	if buf.Len() < minSize {
		buf.Write(make([]byte, minSize-buf.Len()))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestAccept_RejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("just some text"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var v Validator
	_, err := v.Accept(path)
	if !errors.Is(err, ErrInvalidFileType) {
		t.Fatalf("Accept error = %v, want ErrInvalidFileType", err)
	}
	if v.Current() != nil {
		t.Fatal("pending upload set despite rejection")
	}
}

func TestAccept_RejectsOversizedImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "huge.png")
	writeImage(t, path, "png", 10*1024*1024) // 10 MB PNG

	var v Validator
	_, err := v.Accept(path)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("Accept error = %v, want ErrFileTooLarge", err)
	}
	if v.Current() != nil {
		t.Fatal("pending upload set despite rejection")
	}
}

func TestAccept_RejectionLeavesPendingUnchanged(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "ok.png")
	writeImage(t, good, "png", 0)
	huge := filepath.Join(dir, "huge.png")
	writeImage(t, huge, "png", 10*1024*1024)

	var v Validator
	if _, err := v.Accept(good); err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}
	if _, err := v.Accept(huge); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("Accept error = %v, want ErrFileTooLarge", err)
	}

	pending := v.Current()
	if pending == nil || pending.Name != "ok.png" {
		t.Fatalf("pending = %#v, want the previously accepted file", pending)
	}
}

func TestAccept_ValidJPEGIsAccepted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "banana.jpg")
	writeImage(t, path, "jpeg", 2*1024*1024) // 2 MB JPEG

	var v Validator
	pending, err := v.Accept(path)
	if err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}
	if pending.MIMEType != "image/jpeg" {
		t.Fatalf("MIMEType = %q, want image/jpeg", pending.MIMEType)
	}
	if pending.Size < 2*1024*1024 || pending.Size > MaxFileSize {
		t.Fatalf("Size = %d, want within (2MB, 5MiB]", pending.Size)
	}
	if len(pending.Data) != int(pending.Size) {
		t.Fatalf("Data length = %d, want %d", len(pending.Data), pending.Size)
	}

	// Submission is allowed exactly once per selection.
	submitted, err := v.Submit()
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if submitted != pending {
		t.Fatal("Submit handed off a different upload")
	}
	if _, err := v.Submit(); !errors.Is(err, ErrNoFileSelected) {
		t.Fatalf("second Submit error = %v, want ErrNoFileSelected", err)
	}
}

func TestAccept_EmptyPathClearsPending(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.png")
	writeImage(t, path, "png", 0)

	var v Validator
	if _, err := v.Accept(path); err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}

	pending, err := v.Accept("")
	if err != nil {
		t.Fatalf("Accept(\"\") returned error: %v", err)
	}
	if pending != nil || v.Current() != nil {
		t.Fatal("cancellation did not clear the pending upload")
	}
	if _, err := v.Submit(); !errors.Is(err, ErrNoFileSelected) {
		t.Fatalf("Submit error = %v, want ErrNoFileSelected", err)
	}
}

func TestSubmit_WithoutSelection(t *testing.T) {
	var v Validator
	if _, err := v.Submit(); !errors.Is(err, ErrNoFileSelected) {
		t.Fatalf("Submit error = %v, want ErrNoFileSelected", err)
	}
}

func TestRenderPreview_YieldsDataURIAndTerminalArt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.png")
	writeImage(t, path, "png", 0)

	var v Validator
	pending, err := v.Accept(path)
	if err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}

	preview, err := RenderPreview(pending, 16)
	if err != nil {
		t.Fatalf("RenderPreview returned error: %v", err)
	}
	if !strings.HasPrefix(preview.DataURI, "data:image/png;base64,") {
		t.Fatalf("DataURI = %.40q..., want data:image/png;base64 prefix", preview.DataURI)
	}
	if len(preview.DataURI) <= len("data:image/png;base64,") {
		t.Fatal("DataURI carries no payload")
	}
	if preview.Terminal == "" {
		t.Fatal("terminal rendering is empty")
	}
	if preview.Width != 8 || preview.Height != 8 {
		t.Fatalf("dimensions = %dx%d, want 8x8", preview.Width, preview.Height)
	}
	if preview.Generation != pending.Generation {
		t.Fatalf("preview generation = %d, want %d", preview.Generation, pending.Generation)
	}
}

func TestLatest_SupersededSelectionInvalidatesPreview(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.png")
	second := filepath.Join(dir, "second.png")
	writeImage(t, first, "png", 0)
	writeImage(t, second, "png", 0)

	var v Validator
	old, err := v.Accept(first)
	if err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}
	if !v.Latest(old.Generation) {
		t.Fatal("fresh selection reported stale")
	}

	// A new selection supersedes the old one before its preview lands.
	if _, err := v.Accept(second); err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}
	preview, err := RenderPreview(old, 16)
	if err != nil {
		t.Fatalf("RenderPreview returned error: %v", err)
	}
	if v.Latest(preview.Generation) {
		t.Fatal("stale preview still reported as latest")
	}

	// Cancellation also invalidates any in-flight preview.
	current := v.Current()
	if _, err := v.Accept(""); err != nil {
		t.Fatalf("Accept(\"\") returned error: %v", err)
	}
	if v.Latest(current.Generation) {
		t.Fatal("cleared selection still reported as latest")
	}
}
