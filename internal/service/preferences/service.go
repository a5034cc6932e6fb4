package preferences

import (
	"context"
)

// Font scale levels. The level steps by one and clamps at both ends.
const (
	FontNormal = 0
	FontLarge  = 1
	FontXLarge = 2
)

// Preferences is the persisted accessibility record for one user. Reader
// mode is deliberately not part of this record: it triggers audio output and
// must never silently re-activate across a reload, so it always starts off.
type Preferences struct {
	FontLevel      int
	HighContrast   bool
	HighlightLinks bool
}

// Defaults returns the zero preference record.
func Defaults() Preferences {
	return Preferences{}
}

// Normalize clamps the record into its valid range. Applied at every decode
// boundary so out-of-range stored values never propagate.
func (p Preferences) Normalize() Preferences {
	p.FontLevel = ClampFontLevel(p.FontLevel)
	return p
}

// ClampFontLevel bounds a font level into [FontNormal, FontXLarge].
func ClampFontLevel(level int) int {
	if level < FontNormal {
		return FontNormal
	}
	if level > FontXLarge {
		return FontXLarge
	}
	return level
}

// Service defines preference persistence operations.
//
// A missing record is not an error: Get returns Defaults. Writes replace the
// whole record; there are no partial updates.
type Service interface {
	Get(ctx context.Context, userID string) (Preferences, error)
	Put(ctx context.Context, userID string, prefs Preferences) error

	// Reset overwrites storage with the defaults and returns them.
	Reset(ctx context.Context, userID string) (Preferences, error)
}
