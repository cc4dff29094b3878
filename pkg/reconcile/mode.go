package reconcile

import (
	"fmt"
	"strings"

	"github.com/agentstation/georecon/pkg/errors"
)

// Mode selects the resolver chain a run uses.
type Mode string

const (
	// ModeContinents attaches continents to records keyed by alpha-2 code.
	// It never falls back to fuzzy matching.
	ModeContinents Mode = "continents"

	// ModeLabels maps free-text labels to codes, suggesting fuzzy candidates
	// for review when exact matching and the overlay both miss.
	ModeLabels Mode = "labels"
)

// String returns the mode name.
func (m Mode) String() string {
	return string(m)
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeContinents, ModeLabels:
		return m, nil
	default:
		return "", errors.NewValidationError("mode", s, fmt.Sprintf("unknown mode %q", s))
	}
}
