package geofill

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const fakeLayout = "2006-01-02T15:04"

// fakePhoto is the on-disk format of a test photo: its metadata as JSON.
type fakePhoto struct {
	Captured string   `json:"captured,omitempty"`
	GPSTime  string   `json:"gps,omitempty"`
	Lat      *float64 `json:"lat,omitempty"`
	Lon      *float64 `json:"lon,omitempty"`
}

func loadFake(path string) (fakePhoto, error) {
	var p fakePhoto
	bs, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(bs, &p); err != nil {
		return p, fmt.Errorf("corrupt: %w", err)
	}
	return p, nil
}

// fakeReader reads fakePhoto files.
type fakeReader struct{}

func (fakeReader) Read(path string) (*Metadata, error) {
	p, err := loadFake(path)
	if err != nil {
		return nil, err
	}

	md := &Metadata{}
	if p.Captured != "" {
		if md.Captured, err = time.Parse(fakeLayout, p.Captured); err != nil {
			return nil, err
		}
	}
	if p.GPSTime != "" {
		if md.GPSTime, err = time.Parse(time.RFC3339, p.GPSTime); err != nil {
			return nil, err
		}
	}
	if p.Lat != nil && p.Lon != nil {
		md.Location = &Location{Lat: *p.Lat, Lon: *p.Lon}
	}
	return md, nil
}

// fakeWriter rewrites fakePhoto files. If fail is set it writes half of dst and errors out.
type fakeWriter struct {
	fail  bool
	calls int
}

func (w *fakeWriter) WriteLocation(src string, dst string, loc Location) error {
	w.calls++
	p, err := loadFake(src)
	if err != nil {
		return err
	}
	p.Lat, p.Lon = &loc.Lat, &loc.Lon
	bs, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if w.fail {
		if err := os.WriteFile(dst, bs[:len(bs)/2], 0o600); err != nil {
			return err
		}
		return errors.New("disk full")
	}
	return os.WriteFile(dst, bs, 0o600)
}

func writeFake(t *testing.T, dir string, rel string, p fakePhoto) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	bs, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, bs, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func ptr(f float64) *float64 {
	return &f
}

func wall(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation(fakeLayout, s, time.UTC)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts
}
