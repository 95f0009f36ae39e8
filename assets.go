package formval

import (
	"io/fs"

	"github.com/goliatone/go-formval/pkg/scripts"
)

// ScriptAssetsFS exposes the embedded client validation snippets so Go
// applications can serve them without an asset build step.
//
// Typical mount:
//
//	mux.Handle("/validation/",
//	  http.StripPrefix("/validation/",
//	    http.FileServerFS(formval.ScriptAssetsFS()),
//	  ),
//	)
func ScriptAssetsFS() fs.FS {
	return scripts.AssetsFS()
}

// JavaScript serves a built-in snippet template from the process-wide script
// cache. Missing names panic: the embedded resource set is complete at build
// time, so absence is a packaging defect.
func JavaScript(name string) string {
	return scripts.JavaScript(name)
}
