// Package clock provides the reservation engine's notion of "now" without
// a DB round-trip. All workers must have synchronized clocks for lock-expiry
// arithmetic to be safe.
package clock

import "time"

// Mode selects how Now resolves the current time.
type Mode string

const (
	// ModeUTC returns time.Now().UTC(). Default mode.
	ModeUTC Mode = "utc"
	// ModeLocal returns system local time.
	ModeLocal Mode = "local"
	// ModeNamed returns the current time in an explicit IANA zone.
	ModeNamed Mode = "named"
)

// Clock is process-wide configuration: a mode plus an optional named zone,
// fixed when the Clock is constructed and kept for the process lifetime.
// A Clock has no setter, and it does not read the clock mode/zone held in
// config.RuntimeConfig, so RuntimeConfig.SetClock does not change what Now
// returns.
type Clock struct {
	mode Mode
	loc  *time.Location
}

// New builds a Clock in ModeUTC.
func New() *Clock {
	return &Clock{mode: ModeUTC}
}

// NewLocal builds a Clock that reports system local time.
func NewLocal() *Clock {
	return &Clock{mode: ModeLocal}
}

// NewNamed builds a Clock reporting wall time in the given IANA zone, e.g.
// "America/New_York". Returns an error if the zone is unknown.
func NewNamed(zone string) (*Clock, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	return &Clock{mode: ModeNamed, loc: loc}, nil
}

// Now returns the current reference time per the configured mode.
func (c *Clock) Now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	switch c.mode {
	case ModeLocal:
		return time.Now()
	case ModeNamed:
		if c.loc == nil {
			return time.Now().UTC()
		}
		return time.Now().In(c.loc)
	default:
		return time.Now().UTC()
	}
}

// Mode reports the clock's current mode.
func (c *Clock) Mode() Mode {
	if c == nil {
		return ModeUTC
	}
	return c.mode
}
