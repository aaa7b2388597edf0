package ui

import "testing"

func TestFormatSize(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{2621440, "2.5 MB"},
	}
	for _, tc := range cases {
		if got := formatSize(tc.in); got != tc.want {
			t.Fatalf("formatSize(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPreviewCols(t *testing.T) {
	if got := previewCols(0); got != 40 {
		t.Fatalf("previewCols(0) = %d, want default 40", got)
	}
	if got := previewCols(80); got != 40 {
		t.Fatalf("previewCols(80) = %d, want 40", got)
	}
	if got := previewCols(400); got != 60 {
		t.Fatalf("previewCols(400) = %d, want capped at 60", got)
	}
}
