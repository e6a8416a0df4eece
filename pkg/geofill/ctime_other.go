//go:build !windows

package geofill

import "time"

// Birth time is not settable through the unix syscall surface.
func setCreationTime(_ string, _ time.Time) error {
	return nil
}
