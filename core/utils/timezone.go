package utils

import (
	"fmt"
	"time"
)

// LocalToUTC interprets date ("2006-01-02") and clock ("15:04") in the given
// IANA timezone and returns the corresponding UTC instant.
func LocalToUTC(date, clock, tz string) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid local time %q %q: %w", date, clock, err)
	}

	return t.UTC(), nil
}

// UTCToLocal converts a UTC instant into date and clock strings in the given
// IANA timezone.
func UTCToLocal(instant time.Time, tz string) (string, string, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", "", fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	local := instant.In(loc)
	return local.Format("2006-01-02"), local.Format("15:04"), nil
}
