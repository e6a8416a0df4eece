package geofill

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"
)

// Classify walks c.Root and splits the photos it finds into tagged and untagged.
// Files that cannot be read, or carry neither coordinates nor a capture time, are skipped.
func Classify(c *Config, r Reader) (*Collection, error) {
	col := &Collection{}
	root := filepath.Clean(c.Root)

	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsSymlink() || !de.IsRegular() {
				return nil
			}

			if isLeftover(path) {
				klog.Warningf("skipping %s: leftover from an interrupted rewrite", path)
				return nil
			}

			classify(c, r, path, col)
			return nil
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			klog.Warningf("skipping %s: %v", path, err)
			return godirwalk.SkipNode
		},
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", c.Root, err)
	}

	klog.Infof("geotagged files found: %d, files to tag: %d", len(col.Tagged), len(col.Untagged))
	return col, nil
}

func classify(c *Config, r Reader, path string, col *Collection) {
	md, err := r.Read(path)
	if err != nil {
		if errors.Is(err, ErrUnsupported) {
			klog.V(1).Infof("skipping %s: %v", path, err)
			return
		}
		klog.Warningf("error reading metadata from %s: %v", path, err)
		return
	}

	// A fix that rounds to (0, 0) is no fix at all.
	if md.Location != nil {
		if loc := QuantizeLocation(*md.Location); !loc.IsZero() {
			t, ok := Reconcile(md.Captured, md.GPSTime, c.zone())
			if !ok {
				klog.Warningf("skipping %s: has coordinates but no timestamp", path)
				return
			}
			klog.V(1).Infof("tagged: %s at %s, %s", path, t, loc)
			col.Tagged = append(col.Tagged, TaggedPhoto{Path: path, Corrected: t, Location: loc})
			return
		}
	}

	if md.Captured.IsZero() {
		klog.V(1).Infof("skipping %s: no capture time", path)
		return
	}

	t := LocalTime(md.Captured, c.zone())
	klog.V(1).Infof("untagged: %s at %s", path, t)
	col.Untagged = append(col.Untagged, UntaggedPhoto{Path: path, Captured: t})
}

// isLeftover reports whether path is a temp file from a rewrite whose original still exists.
func isLeftover(path string) bool {
	orig, ok := strings.CutSuffix(path, TempSuffix)
	if !ok || orig == "" {
		return false
	}
	_, err := os.Stat(orig)
	return err == nil
}
