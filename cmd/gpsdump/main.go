// gpsdump prints the GPS tags of a single photo.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"k8s.io/klog/v2"

	"github.com/tstromberg/geofill/pkg/meta"
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if flag.NArg() != 1 {
		os.Exit(0)
	}
	path := flag.Arg(0)

	fi, err := os.Lstat(path)
	if err != nil {
		klog.Exitf("path does not exist or is not accessible: %s", path)
	}
	if fi.IsDir() {
		klog.Exitf("path is not a file: %s", path)
	}

	e, err := meta.NewExiftool(meta.Options{})
	if err != nil {
		klog.Exitf("exiftool: %v", err)
	}
	defer func() {
		if err := e.Close(); err != nil {
			klog.Errorf("failed to close exiftool: %v", err)
		}
	}()

	tags, err := e.GPSTags(path)
	if err != nil {
		klog.Errorf("read failure: %v", err)
		return
	}

	if len(tags) == 0 {
		klog.Infof("no geolocation information found for: %s", path)
		return
	}

	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%s = %s\n", k, tags[k])
	}
}
