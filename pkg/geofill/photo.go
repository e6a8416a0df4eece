package geofill

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoMetadata is returned by a Reader when a file carries no usable tags.
	ErrNoMetadata = errors.New("no metadata")
	// ErrUnsupported is returned by a Reader for file types it does not handle.
	ErrUnsupported = errors.New("unsupported file type")
)

// Location is a latitude/longitude pair in signed decimal degrees.
type Location struct {
	Lat float64
	Lon float64
}

// IsZero reports whether l is the (0,0) point, which cameras write when they have no fix.
func (l Location) IsZero() bool {
	return l.Lat == 0 && l.Lon == 0
}

func (l Location) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", l.Lat, l.Lon)
}

// Metadata is what a Reader extracts from a single file.
type Metadata struct {
	// Captured is the recorded capture time. Only its wall clock is used;
	// the zone it was parsed in is ignored.
	Captured time.Time
	// GPSTime is the absolute instant of the GPS fix.
	GPSTime time.Time
	// Location is nil when the file has no GPS coordinates.
	Location *Location
}

// TaggedPhoto is a photo with usable coordinates.
type TaggedPhoto struct {
	Path      string
	Corrected time.Time
	Location  Location
}

// UntaggedPhoto is a photo with a capture time but no usable coordinates.
type UntaggedPhoto struct {
	Path     string
	Captured time.Time
}

// MatchResult binds an untagged photo to the location it should inherit.
type MatchResult struct {
	Photo    UntaggedPhoto
	Location Location
	// Source is the path of the tagged photo the location came from.
	Source  string
	Minutes int64
}

// Collection is the outcome of a classification pass.
type Collection struct {
	Tagged   []TaggedPhoto
	Untagged []UntaggedPhoto
}

// RunResult aggregates everything a run produced.
type RunResult struct {
	Collection
	Matches []MatchResult

	// Retagged counts photos whose coordinates were written.
	Retagged int
	// Retimed counts files whose filesystem times were set.
	Retimed int
}

// Reader extracts metadata from a file.
type Reader interface {
	Read(path string) (*Metadata, error)
}

// Writer produces dst as a copy of src with the GPS coordinates set to loc.
// All other tags of src are carried over unchanged.
type Writer interface {
	WriteLocation(src string, dst string, loc Location) error
}
