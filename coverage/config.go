package coverage

import (
	"slices"

	"github.com/erraggy/specdelta/schema"
)

// DefaultIgnored lists the well-known placeholder entities that have no
// generated counterpart.
var DefaultIgnored = []string{"InputFile", "InputMedia"}

// Config controls one validation run.
type Config struct {
	// Profile selects the markers. A zero Profile means RustProfile.
	Profile Profile
	// Ignored names entities that count as covered without being checked
	Ignored []string
	// CheckFields adds a warning for every struct field whose marker is not
	// found in the source. Field warnings never fail a report.
	CheckFields bool
	// Logger receives debug output. Nil means no logging.
	Logger schema.Logger
}

// DefaultConfig returns a Config with the Rust profile and the default ignore list.
func DefaultConfig() Config {
	return Config{
		Profile: RustProfile(),
		Ignored: slices.Clone(DefaultIgnored),
	}
}

func (c Config) profile() Profile {
	if c.Profile == (Profile{}) {
		return RustProfile()
	}
	return c.Profile
}
