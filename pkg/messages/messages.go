package messages

import (
	"fmt"
	"strings"
	"sync"
)

// Default templates keyed by rule kind. Placeholders are positional ({0},
// {1}, ...) so the same template convention works for server-side issues and
// for the escaped client script templates. Literal braces are written doubled
// ({{ and }}).
const (
	defaultRequired = "The {0} field is required."
	defaultRange    = "The field {0} must be between {1} and {2}."
	defaultLength   = "The field {0} must be a string with a minimum length of {1} and a maximum length of {2}."
	defaultPattern  = "The field {0} must match the regular expression '{1}'."
	defaultCompare  = "'{0}' and '{1}' do not match."
	defaultFallback = "The field {0} is invalid."
)

var defaults = map[string]string{
	"required": defaultRequired,
	"range":    defaultRange,
	"length":   defaultLength,
	"regex":    defaultPattern,
	"equalto":  defaultCompare,
}

// Default returns the built-in message template for a rule kind. Unknown
// kinds fall back to a generic template so callers always have something to
// render.
func Default(kind string) string {
	if tpl, ok := defaults[strings.TrimSpace(kind)]; ok {
		return tpl
	}
	return defaultFallback
}

// Catalog stores message templates by rule kind, overriding the built-in
// defaults. Safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewCatalog creates an empty catalog. Lookups fall through to the defaults.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]string)}
}

// Set registers or replaces a template for a rule kind.
func (c *Catalog) Set(kind, template string) error {
	key := strings.TrimSpace(kind)
	if key == "" {
		return fmt.Errorf("messages: rule kind is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = template
	return nil
}

// Lookup resolves a template for a rule kind, falling back to the built-in
// defaults when the catalog has no override.
func (c *Catalog) Lookup(kind string) string {
	key := strings.TrimSpace(kind)
	if c != nil {
		c.mu.RLock()
		tpl, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return tpl
		}
	}
	return Default(key)
}

// Format expands positional placeholders in a template. `{N}` is replaced by
// args[N]; `{{` and `}}` collapse to literal braces. Placeholders without a
// matching argument are left untouched so partially-bound templates remain
// inspectable.
func Format(template string, args ...string) string {
	if template == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); i++ {
		ch := template[i]
		switch ch {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				b.WriteByte(ch)
				continue
			}
			index, ok := placeholderIndex(template[i+1 : i+end])
			if !ok || index >= len(args) {
				b.WriteString(template[i : i+end+1])
				i += end
				continue
			}
			b.WriteString(args[index])
			i += end
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				i++
			}
			b.WriteByte('}')
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func placeholderIndex(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	index := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
		index = index*10 + int(r-'0')
	}
	return index, true
}
