package entity

import (
	"strconv"
	"time"
)

// DevicePublic is the public half of a fleet device record.
// Only the device itself moves CheckinAt; the listing manager only ever writes Expiration.
type DevicePublic struct {
	ID         string    `json:"id"`          // Fleet device identifier.
	Expiration time.Time `json:"expiration"`  // End of the current lease or listing period.
	CheckinAt  time.Time `json:"checkin_at"`  // Last time the device reported in.
	PrivateRef string    `json:"private_ref"` // Identifier of the matching DevicePrivate record.
	ListingRef string    `json:"listing_ref"` // Identifier of the marketplace listing contract.
}

// SilentFor returns how long the device has gone without checking in.
func (d *DevicePublic) SilentFor(now time.Time) time.Duration {
	return now.Sub(d.CheckinAt)
}

// HasCheckin reports whether the record carries a check-in time.
func (d *DevicePublic) HasCheckin() bool {
	return !d.CheckinAt.IsZero()
}

// HasExpiration reports whether the record carries an expiration.
func (d *DevicePublic) HasExpiration() bool {
	return !d.Expiration.IsZero()
}

// IsUnresponsive reports whether the device has been silent strictly longer than maxDelay.
// A device with no check-in time is never unresponsive.
func (d *DevicePublic) IsUnresponsive(now time.Time, maxDelay time.Duration) bool {
	return d.HasCheckin() && d.SilentFor(now) > maxDelay
}

// IsPastGrace reports whether now is strictly later than the expiration plus grace.
// A device with no expiration is never past grace.
func (d *DevicePublic) IsPastGrace(now time.Time, grace time.Duration) bool {
	return d.HasExpiration() && now.After(d.Expiration.Add(grace))
}

// DevicePrivate holds the login material handed to a renter.
type DevicePrivate struct {
	ID       string `json:"id"`       // Private record identifier.
	SSHPort  int    `json:"ssh_port"` // Port forwarded to the device's SSH daemon.
	Username string `json:"username"` // Login name on the device.
	Password string `json:"-"`        // Login password; never serialised by this side.
}

// AccessNote renders the login details sent to a buyer, connecting through host.
func (d *DevicePrivate) AccessNote(host string) string {
	return "Host: " + host + "\n" +
		"Port: " + strconv.Itoa(d.SSHPort) + "\n" +
		"Login: " + d.Username + "\n" +
		"Password: " + d.Password + "\n"
}
