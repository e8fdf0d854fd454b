package profile

import (
	"testing"

	"github.com/AnyUserName/jpegcore-cli/internal/quant"
)

func TestGet(t *testing.T) {
	for _, name := range Names() {
		p := Get(name)
		if p.Name != name {
			t.Errorf("%s: name %q", name, p.Name)
		}
		if p.Quality < quant.MinQuality || p.Quality > quant.MaxQuality {
			t.Errorf("%s: quality %d out of range", name, p.Quality)
		}
	}
	if Get("legacy-round").Rounding != quant.Nearest {
		t.Error("legacy-round should round to nearest")
	}
}

func TestGet_UnknownFallsBack(t *testing.T) {
	p := Get("nope")
	if p.Name != "nope" {
		t.Errorf("name: got %q", p.Name)
	}
	if p.Quality != 80 || p.Rounding != quant.Truncate {
		t.Errorf("fallback: got %+v", p)
	}
}
