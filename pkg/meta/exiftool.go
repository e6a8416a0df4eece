// Package meta reads and writes photo metadata for geofill.
package meta

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/barasher/go-exiftool"
	"github.com/otiai10/copy"
	"k8s.io/klog/v2"

	"github.com/tstromberg/geofill/pkg/geofill"
)

var exifDate = "2006:01:02 15:04:05"

var errMissing = errors.New("field not present")

// Options configures an Exiftool.
type Options struct {
	// BinaryPath overrides the exiftool binary found in PATH.
	BinaryPath string
	// FileTypes lists the exiftool FileType values to read. Empty means JPEG only.
	FileTypes []string
}

// Exiftool reads and writes metadata through a persistent exiftool process.
type Exiftool struct {
	et    *exiftool.Exiftool
	types []string
}

// NewExiftool starts exiftool.
func NewExiftool(o Options) (*Exiftool, error) {
	opts := []func(*exiftool.Exiftool) error{
		exiftool.CoordFormant("%+.6f"),
	}
	if o.BinaryPath != "" {
		opts = append(opts, exiftool.SetExiftoolBinaryPath(o.BinaryPath))
	}

	et, err := exiftool.NewExiftool(opts...)
	if err != nil {
		return nil, fmt.Errorf("exiftool: %w", err)
	}

	types := []string{}
	for _, t := range o.FileTypes {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		types = []string{"JPEG"}
	}

	return &Exiftool{et: et, types: types}, nil
}

// Close stops the exiftool process.
func (e *Exiftool) Close() error {
	return e.et.Close()
}

func (e *Exiftool) extract(path string) (exiftool.FileMetadata, error) {
	fis := e.et.ExtractMetadata(path)
	if len(fis) == 0 {
		return exiftool.FileMetadata{}, fmt.Errorf("extract %q: %w", path, geofill.ErrNoMetadata)
	}

	fi := fis[0]
	if fi.Err != nil {
		return fi, fmt.Errorf("extract fail for %q: %w", path, fi.Err)
	}

	for k, v := range fi.Fields {
		klog.V(2).Infof("%q=%v\n", k, v)
	}
	return fi, nil
}

// Read implements geofill.Reader.
func (e *Exiftool) Read(path string) (*geofill.Metadata, error) {
	fi, err := e.extract(path)
	if err != nil {
		return nil, err
	}

	ft, err := fi.GetString("FileType")
	if err != nil || !slices.Contains(e.types, strings.ToUpper(ft)) {
		return nil, fmt.Errorf("%q is %q: %w", path, ft, geofill.ErrUnsupported)
	}

	return fromFields(fi), nil
}

// fromFields converts exiftool output into geofill metadata.
func fromFields(fi exiftool.FileMetadata) *geofill.Metadata {
	md := &geofill.Metadata{}

	for _, k := range []string{"DateTimeOriginal", "CreateDate"} {
		t, err := timeField(fi, k, time.Local)
		if err == nil {
			md.Captured = t
			break
		}
		klog.V(1).Infof("unable to get %s for %s: %v", k, fi.File, err)
	}

	md.GPSTime = gpsTime(fi)

	lat, err := coordField(fi, "GPSLatitude", "GPSLatitudeRef", "S")
	if err != nil {
		klog.V(1).Infof("unable to get latitude for %s: %v", fi.File, err)
		return md
	}

	lon, err := coordField(fi, "GPSLongitude", "GPSLongitudeRef", "W")
	if err != nil {
		klog.V(1).Infof("unable to get longitude for %s: %v", fi.File, err)
		return md
	}

	md.Location = &geofill.Location{Lat: lat, Lon: lon}
	return md
}

func gpsTime(fi exiftool.FileMetadata) time.Time {
	if t, err := timeField(fi, "GPSDateTime", time.UTC); err == nil {
		return t.UTC()
	}

	ds, err := fi.GetString("GPSDateStamp")
	if err != nil {
		return time.Time{}
	}
	ts, err := fi.GetString("GPSTimeStamp")
	if err != nil {
		return time.Time{}
	}

	t, err := parseExifTime(ds+" "+ts, time.UTC)
	if err != nil {
		klog.V(1).Infof("unable to parse GPS stamp for %s: %v", fi.File, err)
		return time.Time{}
	}
	return t.UTC()
}

func timeField(fi exiftool.FileMetadata, k string, loc *time.Location) (time.Time, error) {
	s, err := fi.GetString(k)
	if err != nil {
		return time.Time{}, err
	}
	return parseExifTime(s, loc)
}

// parseExifTime parses an EXIF date, with or without a trailing zone designator.
// Dates without a zone are interpreted in loc.
func parseExifTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(strings.TrimRight(s, "\x00"))
	if t, err := time.Parse(exifDate+"Z07:00", s); err == nil {
		return t, nil
	}

	t, err := time.ParseInLocation(exifDate, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

// coordField returns a signed coordinate. exiftool may report either the signed
// composite value or the unsigned EXIF value, so the reference tag is consulted
// for the hemisphere when the value itself is positive.
func coordField(fi exiftool.FileMetadata, k string, refKey string, negRef string) (float64, error) {
	v, ok := fi.Fields[k]
	if !ok {
		return 0, fmt.Errorf("%s: %w", k, errMissing)
	}

	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		var err error
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("parse %s %q: %w", k, t, err)
		}
	default:
		return 0, fmt.Errorf("%s has unexpected type %T", k, v)
	}

	if ref, err := fi.GetString(refKey); err == nil && f > 0 && strings.HasPrefix(strings.ToUpper(ref), negRef) {
		f = -f
	}
	return f, nil
}

// WriteLocation implements geofill.Writer: it copies src to dst and sets the
// GPS position on dst in place. exiftool merges the new tags into whatever dst
// already carries, so every other tag of src survives.
func (e *Exiftool) WriteLocation(src string, dst string, loc geofill.Location) error {
	if err := copy.Copy(src, dst); err != nil {
		return fmt.Errorf("copy: %w", err)
	}

	fm := exiftool.EmptyFileMetadata()
	fm.File = dst
	setLocation(&fm, loc)

	fms := []exiftool.FileMetadata{fm}
	e.et.WriteMetadata(fms)
	if fms[0].Err != nil {
		return fmt.Errorf("write metadata: %w", fms[0].Err)
	}
	return nil
}

func setLocation(fm *exiftool.FileMetadata, loc geofill.Location) {
	latRef, lonRef := "N", "E"
	if loc.Lat < 0 {
		latRef = "S"
	}
	if loc.Lon < 0 {
		lonRef = "W"
	}

	fm.SetFloat("GPSLatitude", math.Abs(loc.Lat))
	fm.SetString("GPSLatitudeRef", latRef)
	fm.SetFloat("GPSLongitude", math.Abs(loc.Lon))
	fm.SetString("GPSLongitudeRef", lonRef)
}

// GPSTags returns every GPS-prefixed tag of path.
func (e *Exiftool) GPSTags(path string) (map[string]string, error) {
	fi, err := e.extract(path)
	if err != nil {
		return nil, err
	}

	tags := map[string]string{}
	for k, v := range fi.Fields {
		if strings.HasPrefix(k, "GPS") {
			tags[k] = fmt.Sprintf("%v", v)
		}
	}
	return tags, nil
}
