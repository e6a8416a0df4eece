package geofill

import (
	"errors"
	"fmt"
	"os"

	"github.com/anthonynsimon/bild/imgio"
	"k8s.io/klog/v2"
)

// TempSuffix is appended to a photo's path to name its rewrite staging file.
const TempSuffix = "tmp"

// Apply embeds m.Location into the photo at m.Photo.Path.
// The rewrite is staged in a sibling temp file that replaces the original only
// once it is complete, so the original is either fully replaced or untouched.
func Apply(c *Config, w Writer, m MatchResult) error {
	path := m.Photo.Path
	tmp := path + TempSuffix

	klog.V(1).Infof("tagging %s with %s from %s (%d minutes apart)", path, m.Location, m.Source, m.Minutes)
	if err := w.WriteLocation(path, tmp, m.Location); err != nil {
		discard(tmp)
		return fmt.Errorf("update exif metadata %s: %w", tmp, err)
	}

	if c.Verify {
		if _, err := imgio.Open(tmp); err != nil {
			discard(tmp)
			return fmt.Errorf("verify %s: %w", tmp, err)
		}
	}

	if err := os.Rename(tmp, path); err != nil {
		discard(tmp)
		return fmt.Errorf("move %s: %w", tmp, err)
	}

	return nil
}

func discard(tmp string) {
	if err := os.Remove(tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
		klog.Warningf("unable to remove %s: %v", tmp, err)
	}
}
