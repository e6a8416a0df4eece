// Package geofill propagates GPS coordinates from geotagged photos to untagged
// photos taken around the same time, and aligns filesystem times with capture times.
package geofill

import (
	"fmt"

	"k8s.io/klog/v2"
)

// Run classifies the photos under c.Root, tags each untagged photo with the
// location of its nearest-in-time tagged neighbour, then syncs filesystem times.
// Per-file failures are logged and skipped; only configuration and walk errors are returned.
func Run(c *Config, r Reader, w Writer) (*RunResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	klog.Infof("starting to process files in %s", c.Root)

	col, err := Classify(c, r)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	res := &RunResult{Collection: *col}

	switch {
	case len(col.Tagged) == 0:
		klog.Infof("no geotagged photos found at %s", c.Root)
	case len(col.Untagged) == 0:
		klog.Infof("no untagged photos found at %s", c.Root)
	default:
		propagate(c, w, res)
	}

	if c.DryRun {
		klog.Infof("[dry-run] would set times for %d files", len(col.Tagged)+len(col.Untagged))
	} else {
		res.Retimed = SyncTimes(col)
	}

	klog.Infof("processed untagged image files with geotags: %d", res.Retagged)
	klog.Infof("reassigned dates for files: %d", res.Retimed)
	return res, nil
}

func propagate(c *Config, w Writer, res *RunResult) {
	for _, u := range res.Untagged {
		m, ok := Match(u, res.Tagged)
		if !ok {
			klog.V(1).Infof("no geotagged photo within %d minutes of %s", MatchWindow, u.Path)
			continue
		}
		res.Matches = append(res.Matches, m)

		if c.DryRun {
			klog.Infof("[dry-run] would tag %s with %s from %s", u.Path, m.Location, m.Source)
			continue
		}

		if err := Apply(c, w, m); err != nil {
			klog.Warningf("could not tag %s: %v", u.Path, err)
			continue
		}
		res.Retagged++
	}
}
