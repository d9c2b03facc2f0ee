// Package web holds the rrsched dashboard that the monitor serves at "/".
//
// The dashboard is compiled into the binary. Setting RRSCHED_MONITOR_DEV to
// a true value makes the monitor read the pages from this package's dist
// directory on disk instead, so edits to index.html show up on reload
// without rebuilding rrsched.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// DevModeEnv is the variable that switches the dashboard to on-disk pages.
const DevModeEnv = "RRSCHED_MONITOR_DEV"

//go:embed dist/*
var dashboard embed.FS

// GetAssets returns the dashboard pages.
func GetAssets() http.FileSystem {
	if devMode() {
		dir := sourceDistDir()
		fmt.Fprintf(os.Stderr, "Serving dashboard pages from %s\n", dir)

		return http.Dir(dir)
	}

	pages, err := fs.Sub(dashboard, "dist")
	if err != nil {
		panic(err)
	}

	return http.FS(pages)
}

func devMode() bool {
	on, err := strconv.ParseBool(os.Getenv(DevModeEnv))
	return err == nil && on
}

// sourceDistDir locates dist next to this file in the source tree.
func sourceDistDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("web: cannot locate dashboard sources")
	}

	return filepath.Join(filepath.Dir(file), "dist")
}
