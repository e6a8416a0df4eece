package geofill

import (
	"fmt"
	"os"
	"time"

	"k8s.io/klog/v2"
)

// SyncTimes sets the filesystem times of every photo in col to its corrected
// local time, returning how many files were updated.
func SyncTimes(col *Collection) int {
	n := 0
	for _, t := range col.Tagged {
		if syncTime(t.Path, t.Corrected) {
			n++
		}
	}
	for _, u := range col.Untagged {
		if syncTime(u.Path, u.Captured) {
			n++
		}
	}
	return n
}

func syncTime(path string, t time.Time) bool {
	if err := SetFileTimes(path, t); err != nil {
		klog.Warningf("could not set attributes for file %s: %v", path, err)
		return false
	}
	klog.V(2).Infof("set times of %s to %s", path, t)
	return true
}

// SetFileTimes sets the modification, access and, where the platform allows it, creation time of path.
func SetFileTimes(path string, t time.Time) error {
	if err := os.Chtimes(path, t, t); err != nil {
		return fmt.Errorf("chtimes: %w", err)
	}
	if err := setCreationTime(path, t); err != nil {
		return fmt.Errorf("creation time: %w", err)
	}
	return nil
}
