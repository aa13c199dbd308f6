package entity

import (
	"maps"
	"time"

	domainerrors "listingmanager/internal/domain/errors"
)

// Lease tier names.
const (
	LeaseTierNow     = "now"
	LeaseTierTesting = "testing"
	LeaseTierHour    = "1hr"
	LeaseTierDay     = "1day"
	LeaseTierWeek    = "1week"
	LeaseTierMonth   = "1month"
)

// LeaseTiers maps a tier name to the offset added to "now" when setting a
// device expiration.
type LeaseTiers map[string]time.Duration

// DefaultLeaseTiers returns the built-in tier table.
func DefaultLeaseTiers() LeaseTiers {
	return LeaseTiers{
		LeaseTierNow:     0,
		LeaseTierTesting: 8 * time.Minute,
		LeaseTierHour:    time.Hour,
		LeaseTierDay:     24 * time.Hour,
		LeaseTierWeek:    7 * 24 * time.Hour,
		LeaseTierMonth:   30 * 24 * time.Hour,
	}
}

// Merge returns a copy of t with overrides applied on top.
func (t LeaseTiers) Merge(overrides map[string]time.Duration) LeaseTiers {
	merged := make(LeaseTiers, len(t)+len(overrides))
	maps.Copy(merged, t)
	maps.Copy(merged, overrides)

	return merged
}

// Duration looks up a tier by name.
func (t LeaseTiers) Duration(tier string) (time.Duration, error) {
	d, ok := t[tier]
	if !ok {
		return 0, domainerrors.ErrUnknownLeaseTier.WithDetails(tier)
	}

	return d, nil
}

// ExpiresAt returns the expiration for a lease of the named tier starting at now.
func (t LeaseTiers) ExpiresAt(tier string, now time.Time) (time.Time, error) {
	d, err := t.Duration(tier)
	if err != nil {
		return time.Time{}, err
	}

	return now.Add(d), nil
}
