package meta

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	"k8s.io/klog/v2"

	"github.com/tstromberg/geofill/pkg/geofill"
)

// GoExif is a pure-Go, read-only geofill.Reader for JPEG files.
type GoExif struct{}

// Read implements geofill.Reader.
func (GoExif) Read(path string) (*geofill.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if ct := http.DetectContentType(head[:n]); ct != "image/jpeg" {
		return nil, fmt.Errorf("%q is %s: %w", path, ct, geofill.ErrUnsupported)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s: %w", path, err)
	}

	x, err := exif.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding exif: %w", err)
	}

	md := &geofill.Metadata{}
	for _, name := range []exif.FieldName{exif.DateTimeOriginal, exif.DateTimeDigitized} {
		t, err := exifTime(x, name)
		if err == nil {
			md.Captured = t
			break
		}
		klog.V(1).Infof("unable to get %s for %s: %v", name, path, err)
	}

	md.GPSTime, err = gpsStamp(x)
	if err != nil {
		klog.V(1).Infof("unable to get GPS time for %s: %v", path, err)
	}

	lat, lon, err := x.LatLong()
	if err != nil {
		klog.V(1).Infof("no GPS data for %s: %v", path, err)
		return md, nil
	}
	md.Location = &geofill.Location{Lat: lat, Lon: lon}
	return md, nil
}

func exifTime(x *exif.Exif, name exif.FieldName) (time.Time, error) {
	tag, err := x.Get(name)
	if err != nil {
		return time.Time{}, err
	}
	s, err := tag.StringVal()
	if err != nil {
		return time.Time{}, err
	}
	return parseExifTime(s, time.Local)
}

// gpsStamp assembles the UTC fix time from GPSDateStamp and the GPSTimeStamp rationals.
func gpsStamp(x *exif.Exif) (time.Time, error) {
	dt, err := x.Get(exif.GPSDateStamp)
	if err != nil {
		return time.Time{}, err
	}
	ds, err := dt.StringVal()
	if err != nil {
		return time.Time{}, err
	}
	d, err := time.Parse("2006:01:02", strings.TrimSpace(strings.TrimRight(ds, "\x00")))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", ds, err)
	}

	tt, err := x.Get(exif.GPSTimeStamp)
	if err != nil {
		return time.Time{}, err
	}

	var parts [3]float64
	for i := range parts {
		parts[i], err = ratFloat(tt, i)
		if err != nil {
			return time.Time{}, err
		}
	}

	offset := time.Duration(parts[0]*float64(time.Hour)) +
		time.Duration(parts[1]*float64(time.Minute)) +
		time.Duration(parts[2]*float64(time.Second))
	return d.Add(offset), nil
}

func ratFloat(tag *tiff.Tag, i int) (float64, error) {
	num, den, err := tag.Rat2(i)
	if err != nil {
		return 0, err
	}
	if den == 0 {
		return 0, fmt.Errorf("zero denominator in %v", tag)
	}
	return float64(num) / float64(den), nil
}
