package palette

import (
	"testing"

	"github.com/matzehuels/tagkit/pkg/errors"
)

func TestShadesEndpoints(t *testing.T) {
	cm, err := Named("summer")
	if err != nil {
		t.Fatalf("Named: %v", err)
	}
	shades := Hex(cm.Shades(100))
	if len(shades) != 100 {
		t.Fatalf("len = %d, want 100", len(shades))
	}
	if shades[0] != "#008066" {
		t.Errorf("first shade = %s, want #008066", shades[0])
	}
	if shades[99] != "#ffff66" {
		t.Errorf("last shade = %s, want #ffff66", shades[99])
	}

	rev := Hex(Reverse(cm.Shades(100)))
	if rev[0] != "#ffff66" || rev[99] != "#008066" {
		t.Errorf("Reverse endpoints = %s, %s", rev[0], rev[99])
	}
}

func TestShadesSmallCounts(t *testing.T) {
	cm, _ := Named("greys")
	if got := cm.Shades(0); got != nil {
		t.Errorf("Shades(0) = %v, want nil", got)
	}
	if got := Hex(cm.Shades(1)); got[0] != "#000000" {
		t.Errorf("Shades(1) = %v", got)
	}
	mid := Hex(cm.Shades(3))[1]
	if mid != "#808080" && mid != "#7f7f7f" {
		t.Errorf("middle grey = %s", mid)
	}
}

func TestNamedUnknown(t *testing.T) {
	_, err := Named("rainbow-unicorn")
	if !errors.Is(err, errors.ErrCodeInvalidColormap) {
		t.Errorf("Named(unknown) error = %v, want INVALID_COLORMAP", err)
	}
}

func TestNamedCaseInsensitive(t *testing.T) {
	if _, err := Named("Viridis"); err != nil {
		t.Errorf("Named(Viridis): %v", err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "#ff0000", want: "#ff0000"},
		{in: "#f00", want: "#ff0000"},
		{in: "  Teal ", want: "#008080"},
		{in: "not-a-colour", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Parse(%q) should fail", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if c.Hex() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, c.Hex(), tt.want)
			}
		})
	}
}

func TestAtClamps(t *testing.T) {
	cm, _ := Named("hot")
	if cm.At(-1).Hex() != "#000000" {
		t.Errorf("At(-1) = %s", cm.At(-1).Hex())
	}
	if cm.At(2).Hex() != "#ffffff" {
		t.Errorf("At(2) = %s", cm.At(2).Hex())
	}
}
