// geofill copies GPS coordinates from geotagged photos to untagged photos
// taken within an hour of them, then sets file times to the capture time.
package main

import (
	"flag"
	"os"
	"strings"
	"time"

	"k8s.io/klog/v2"

	"github.com/tstromberg/geofill/pkg/geofill"
	"github.com/tstromberg/geofill/pkg/meta"
)

var (
	dryRun       = flag.Bool("n", false, "dry-run mode, don't modify files")
	readerFlag   = flag.String("reader", "exiftool", "metadata reader: exiftool or goexif")
	zone         = flag.String("zone", "", "time zone capture times are recorded in (default: system zone)")
	verify       = flag.Bool("verify", true, "decode rewritten images before replacing the originals")
	exiftoolPath = flag.String("exiftool", "", "path to the exiftool binary")
	fileTypes    = flag.String("types", "JPEG", "comma-separated exiftool file types to process")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if flag.NArg() != 1 {
		os.Exit(0)
	}

	c := &geofill.Config{
		Root:   flag.Arg(0),
		DryRun: *dryRun,
		Verify: *verify,
	}

	if *readerFlag != "exiftool" && *readerFlag != "goexif" {
		klog.Exitf("unknown reader %q", *readerFlag)
	}

	if *zone != "" {
		loc, err := time.LoadLocation(*zone)
		if err != nil {
			klog.Exitf("invalid zone %q: %v", *zone, err)
		}
		c.Zone = loc
	}

	et, err := meta.NewExiftool(meta.Options{
		BinaryPath: *exiftoolPath,
		FileTypes:  strings.Split(*fileTypes, ","),
	})
	if err != nil {
		klog.Exitf("exiftool failed: %v", err)
	}

	var r geofill.Reader
	switch *readerFlag {
	case "exiftool":
		r = et
	case "goexif":
		r = meta.GoExif{}
	}

	_, err = geofill.Run(c, r, et)
	if cerr := et.Close(); cerr != nil {
		klog.Errorf("failed to close exiftool: %v", cerr)
	}
	if err != nil {
		klog.Exitf("run failed: %v", err)
	}

	klog.Infof("finished processing for path %s", c.Root)
}
