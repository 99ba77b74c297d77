package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/tagkit/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="4" height="4"><rect width="4" height="4" fill="#ff0000"/></svg>`

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"svg", FormatSVG, false},
		{" PNG ", FormatPNG, false},
		{"pdf", FormatPDF, false},
		{"term", FormatTerm, false},
		{"jpeg", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidFormat) {
					t.Errorf("ParseFormat(%q) error = %v, want INVALID_FORMAT", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestFormatMetadata(t *testing.T) {
	tests := []struct {
		f        Format
		ctype    string
		ext      string
		needsCvt bool
	}{
		{FormatSVG, "image/svg+xml", "svg", false},
		{FormatPNG, "image/png", "png", true},
		{FormatPDF, "application/pdf", "pdf", true},
		{FormatTerm, "text/plain; charset=utf-8", "txt", false},
	}
	for _, tt := range tests {
		if got := tt.f.ContentType(); got != tt.ctype {
			t.Errorf("%s.ContentType() = %q, want %q", tt.f, got, tt.ctype)
		}
		if got := tt.f.Ext(); got != tt.ext {
			t.Errorf("%s.Ext() = %q, want %q", tt.f, got, tt.ext)
		}
		if got := tt.f.NeedsConverter(); got != tt.needsCvt {
			t.Errorf("%s.NeedsConverter() = %v, want %v", tt.f, got, tt.needsCvt)
		}
	}
}

func TestConvertSVGPassthrough(t *testing.T) {
	out, err := Convert(context.Background(), []byte(tinySVG), FormatSVG, 0)
	if err != nil || string(out) != tinySVG {
		t.Errorf("Convert(svg) = %q, %v", out, err)
	}
}

func TestConvertTermUnsupported(t *testing.T) {
	_, err := Convert(context.Background(), []byte(tinySVG), FormatTerm, 0)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Convert(term) error = %v, want UNSUPPORTED", err)
	}
}

func TestConvertPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	out, err := Convert(context.Background(), []byte(tinySVG), FormatPNG, 1)
	if err != nil {
		t.Fatalf("Convert(png): %v", err)
	}
	if !bytes.HasPrefix(out, []byte("\x89PNG")) {
		t.Errorf("output is not a PNG: %q", out[:min(len(out), 8)])
	}
}

func TestConvertMissingTool(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	_, err := Convert(context.Background(), []byte(tinySVG), FormatPDF, 0)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Convert without rsvg-convert: error = %v, want UNSUPPORTED", err)
	}
}
