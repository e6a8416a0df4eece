package geofill

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// ErrInvalidRoot is returned by Validate when the root directory cannot be processed.
var ErrInvalidRoot = errors.New("invalid root")

// Config holds configuration for geofill.
type Config struct {
	Root string
	// Zone is the zone capture timestamps are recorded in. nil means time.Local.
	Zone   *time.Location
	DryRun bool
	// Verify decodes each rewritten image before it replaces the original.
	Verify bool
}

func (c *Config) zone() *time.Location {
	if c.Zone == nil {
		return time.Local
	}
	return c.Zone
}

// Validate checks that Root is an existing, readable and writable directory.
// Run calls it before touching any file.
func (c *Config) Validate() error {
	fi, err := os.Lstat(c.Root)
	if err != nil {
		return fmt.Errorf("%w: path does not exist or is not accessible: %s: %v", ErrInvalidRoot, c.Root, err)
	}

	if !fi.IsDir() {
		return fmt.Errorf("%w: path is not a directory: %s", ErrInvalidRoot, c.Root)
	}

	d, err := os.Open(c.Root)
	if err != nil {
		return fmt.Errorf("%w: path is not readable: %s: %v", ErrInvalidRoot, c.Root, err)
	}
	defer d.Close()

	if _, err := d.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: path is not readable: %s: %v", ErrInvalidRoot, c.Root, err)
	}

	f, err := os.CreateTemp(c.Root, ".geofill-*")
	if err != nil {
		return fmt.Errorf("%w: path is not writable: %s: %v", ErrInvalidRoot, c.Root, err)
	}
	f.Close()
	if err := os.Remove(f.Name()); err != nil {
		return fmt.Errorf("%w: unable to remove entries from path: %s: %v", ErrInvalidRoot, c.Root, err)
	}
	return nil
}
