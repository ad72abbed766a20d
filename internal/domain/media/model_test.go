package media_test

import (
	"testing"

	media "github.com/memberhub/media-api/internal/domain/media"
)

func TestDeriveType(t *testing.T) {
	tests := []struct {
		mime   string
		want   media.MediaType
		wantOK bool
	}{
		{"image/png", media.TypeImage, true},
		{"image/webp", media.TypeImage, true},
		{"video/mp4", media.TypeVideo, true},
		{"audio/mpeg", media.TypeAudio, true},
		{"application/pdf", media.TypeDocument, true},
		{"text/plain; charset=utf-8", media.TypeDocument, true},
		{"application/msword", media.TypeDocument, true},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", media.TypeDocument, true},
		{"application/zip", "", false},
		{"application/octet-stream", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := media.DeriveType(tt.mime)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("DeriveType(%q) = (%q, %v), want (%q, %v)", tt.mime, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSizeLimit(t *testing.T) {
	tests := []struct {
		mediaType media.MediaType
		want      int64
	}{
		{media.TypeImage, 50 * 1024 * 1024},
		{media.TypeVideo, 500 * 1024 * 1024},
		{media.TypeAudio, 100 * 1024 * 1024},
		{media.TypeDocument, 25 * 1024 * 1024},
		{media.MediaType("archive"), 0},
	}
	for _, tt := range tests {
		if got := media.SizeLimit(tt.mediaType); got != tt.want {
			t.Errorf("SizeLimit(%q) = %d, want %d", tt.mediaType, got, tt.want)
		}
	}
}
