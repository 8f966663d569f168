package network

import (
	"errors"
	"fmt"
)

// ConfigErrorKind enumerates the construction-time failure taxonomy of
// SPEC_FULL.md §7. Construction errors abort network.New entirely; they
// are never downgraded to a warning.
type ConfigErrorKind int

const (
	// ErrKindMalformed covers bad indices, length-coherence failures, and
	// other structurally invalid DIE payloads.
	ErrKindMalformed ConfigErrorKind = iota
	// ErrKindDisconnected: the network is islanded and no slack-per-zone
	// selection has been made (§4.2 step 6).
	ErrKindDisconnected
	// ErrKindReserveTooSmall: a generator's frequency-reserve half-band
	// cannot cover the worst single-contingency generation loss it is
	// eligible to react to (§4.2 step 5).
	ErrKindReserveTooSmall
	// ErrKindPocketWithSource: a lost pocket's contingency also trips
	// generators or HVDCs (§4.3).
	ErrKindPocketWithSource
	// ErrKindACEmulationCrossZone: an AC-emulation HVDC's fictive branch
	// crosses a zone boundary (§4.3).
	ErrKindACEmulationCrossZone
)

func (k ConfigErrorKind) String() string {
	switch k {
	case ErrKindDisconnected:
		return "Disconnected"
	case ErrKindReserveTooSmall:
		return "ReserveTooSmall"
	case ErrKindPocketWithSource:
		return "PocketWithSource"
	case ErrKindACEmulationCrossZone:
		return "AcEmulationCrossZone"
	default:
		return "Malformed"
	}
}

// ConfigError is returned by network construction. Kind identifies the
// taxonomy bucket (§7); Detail carries the human-readable reason, usually
// naming the offending element.
type ConfigError struct {
	Kind   ConfigErrorKind
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("network: %s: %s", e.Kind, e.Detail)
}

func newConfigError(kind ConfigErrorKind, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Is lets errors.Is(err, ErrDisconnected) match any ConfigError of that kind.
func (e *ConfigError) Is(target error) bool {
	var ce *ConfigError
	if errors.As(target, &ce) {
		return ce.Kind == e.Kind
	}
	return false
}

// Sentinel markers usable with errors.Is, one per kind, carrying no detail.
var (
	ErrDisconnected          = &ConfigError{Kind: ErrKindDisconnected}
	ErrReserveTooSmall       = &ConfigError{Kind: ErrKindReserveTooSmall}
	ErrPocketWithSource      = &ConfigError{Kind: ErrKindPocketWithSource}
	ErrACEmulationCrossZone  = &ConfigError{Kind: ErrKindACEmulationCrossZone}
)
