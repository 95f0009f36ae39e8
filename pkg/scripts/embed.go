package scripts

import (
	"embed"
	"io/fs"
)

//go:embed assets/*.js
var embeddedScripts embed.FS

// Built-in snippet names served by the default cache.
const (
	ValidationBootstrapName = "validation-bootstrap.js"
	SubmitHandlerName       = "submit-handler.js"
)

var defaultCache = NewCache(AssetsFS())

// AssetsFS exposes the embedded snippet bundle so callers can serve the raw
// files over HTTP or inspect them directly.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedScripts, "assets")
	if err != nil {
		// Should never happen, but fall back to raw FS so assets remain usable.
		return embeddedScripts
	}
	return sub
}

// JavaScript serves a built-in snippet template from the process-wide cache.
func JavaScript(name string) string {
	return defaultCache.JavaScript(name)
}
