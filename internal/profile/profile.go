package profile

import "github.com/AnyUserName/jpegcore-cli/internal/quant"

// DefaultName is used when no profile is requested.
const DefaultName = "default"

// Profile bundles the encoder parameters for a use case.
type Profile struct {
	Name     string
	Quality  int            // 1-99
	Rounding quant.Rounding // coefficient rounding after division
	MaxWidth int            // downscale wider inputs first; 0 = keep size
}

// Built-in profiles.
var profiles = map[string]Profile{
	"default": {
		Name:     "default",
		Quality:  80,
		Rounding: quant.Truncate,
	},
	"web": {
		Name:     "web",
		Quality:  75,
		Rounding: quant.Truncate,
		MaxWidth: 1280,
	},
	"archival": {
		Name:     "archival",
		Quality:  95,
		Rounding: quant.Truncate,
	},
	"preview": {
		Name:     "preview",
		Quality:  40,
		Rounding: quant.Truncate,
		MaxWidth: 640,
	},
	// Parity with encoders that round coefficients to nearest.
	"legacy-round": {
		Name:     "legacy-round",
		Quality:  80,
		Rounding: quant.Nearest,
	},
}

// Get returns a profile by name. Falls back to default if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles[DefaultName]
	p.Name = name // preserve requested name
	return p
}

// Names lists the built-in profile names in display order.
func Names() []string {
	return []string{"default", "web", "archival", "preview", "legacy-round"}
}
