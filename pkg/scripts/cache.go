// Package scripts serves the embedded client validation snippets as
// positional-placeholder templates, memoizing the load-and-transform exactly
// once per resource name.
package scripts

import (
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache loads named text resources once, transforms them, and memoizes the
// result by name (case-sensitive). Concurrent first access for one name runs
// the load a single time and every caller observes the same completed string;
// subsequent reads are lock-free lookups.
type Cache struct {
	source  fs.FS
	entries sync.Map
	group   singleflight.Group
}

// NewCache builds a cache over a resource source. The resource set is
// expected to be complete at build time; a missing name is a packaging
// defect, not a recoverable condition.
func NewCache(source fs.FS) *Cache {
	return &Cache{source: source}
}

// JavaScript returns the transformed template for a resource name, loading it
// on first access. Missing resources panic: there is no recovery path for an
// incomplete embedded resource set.
func (c *Cache) JavaScript(name string) string {
	text, err := c.javaScript(name)
	if err != nil {
		panic(err)
	}
	return text
}

func (c *Cache) javaScript(name string) (string, error) {
	if cached, ok := c.entries.Load(name); ok {
		return cached.(string), nil
	}

	result, err, _ := c.group.Do(name, func() (any, error) {
		if cached, ok := c.entries.Load(name); ok {
			return cached, nil
		}
		data, err := fs.ReadFile(c.source, name)
		if err != nil {
			return nil, fmt.Errorf("scripts: embedded resource %q: %w", name, err)
		}
		text := PrepareTemplate(string(data))
		c.entries.Store(name, text)
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// PrepareTemplate escapes a script body for positional-placeholder use:
// literal braces are doubled, then the reserved triple-bracket markers
// ([[[ and ]]]) become single braces so authors reintroduce real placeholders
// at chosen positions. Expand the result with messages.Format.
func PrepareTemplate(raw string) string {
	escaped := strings.ReplaceAll(raw, "{", "{{")
	escaped = strings.ReplaceAll(escaped, "}", "}}")
	escaped = strings.ReplaceAll(escaped, "[[[", "{")
	return strings.ReplaceAll(escaped, "]]]", "}")
}
