package geofill

import "time"

// Reconcile picks the authoritative local time for a photo from its capture
// time and its GPS fix time, either of which may be zero.
//
// Some cameras store GPS time as local time without the zone offset, so the two
// differ by a whole number of hours. That skew is harmless and the capture time
// wins. Any other skew means the camera clock is wrong and the GPS time wins.
func Reconcile(captured time.Time, gps time.Time, loc *time.Location) (time.Time, bool) {
	switch {
	case captured.IsZero() && gps.IsZero():
		return time.Time{}, false
	case gps.IsZero():
		return LocalTime(captured, loc), true
	case captured.IsZero():
		return gps.In(loc), true
	}

	c := LocalTime(captured, loc)
	g := gps.In(loc)
	if minutesBetween(g, c)%60 == 0 {
		return c, true
	}
	return g, true
}

// LocalTime returns the wall clock of t interpreted in loc.
func LocalTime(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// minutesBetween returns whole wall-clock minutes from a to b, truncated toward zero.
func minutesBetween(a time.Time, b time.Time) int64 {
	return int64(wallClock(b).Sub(wallClock(a)) / time.Minute)
}

func wallClock(t time.Time) time.Time {
	return LocalTime(t, time.UTC)
}
