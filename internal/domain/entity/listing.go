package entity

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	domainerrors "listingmanager/internal/domain/errors"
)

//nolint:gochecknoglobals
var slugValidator = validator.New()

// Listing represents an active marketplace listing backed by a fleet device.
type Listing struct {
	Slug       string    `json:"slug"`       // Listing slug; the trailing segment is the device ID.
	Title      string    `json:"title"`      // Listing title as shown in the store.
	Expiration time.Time `json:"expiration"` // Listing expiration reported by the store, if any.
}

// DeviceID resolves the fleet device behind this listing.
func (l *Listing) DeviceID() (string, error) {
	return DeviceIDFromSlug(l.Slug)
}

// DeviceIDFromSlug returns the substring after the last hyphen in slug.
// The result must be a non-empty alphanumeric identifier.
func DeviceIDFromSlug(slug string) (string, error) {
	idx := strings.LastIndex(slug, "-")
	if idx < 0 {
		return "", domainerrors.ErrMalformedSlug.WithDetails(slug)
	}

	deviceID := slug[idx+1:]
	if err := slugValidator.Var(deviceID, "required,alphanum"); err != nil {
		return "", domainerrors.ErrMalformedSlug.WithDetails(slug)
	}

	return deviceID, nil
}
