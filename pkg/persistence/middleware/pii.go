package middleware

import (
	"context"
	"encoding/json"
	"regexp"

	"github.com/aretw0/mindbuffer/pkg/ports"
)

// Mask replaces the value of credential-like fields.
const Mask = "***"

// SecretPatterns match the field names treated as credentials.
var SecretPatterns = []string{`(?i)^api_?key$`, `(?i)password`, `(?i)token`}

type piiMiddleware struct {
	next     ports.KVStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks values of JSON fields whose
// name matches one of the patterns before they reach the store. Values that
// are not JSON objects or arrays are stored unchanged.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := compile(patternStrings)
	return func(next ports.KVStore) ports.KVStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Set(ctx context.Context, key string, value []byte) error {
	masked, err := maskJSON(value, m.patterns)
	if err != nil {
		return m.next.Set(ctx, key, value)
	}
	return m.next.Set(ctx, key, masked)
}

func (m *piiMiddleware) Get(ctx context.Context, key string) ([]byte, error) {
	return m.next.Get(ctx, key)
}

func (m *piiMiddleware) Delete(ctx context.Context, key string) error {
	return m.next.Delete(ctx, key)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// Redact masks matching fields of the JSON encoding of v and returns the
// result as a generic value ready to be re-encoded.
func Redact(v any, patternStrings []string) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	maskValue(generic, compile(patternStrings))
	return generic, nil
}

func compile(patternStrings []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return patterns
}

func maskJSON(data []byte, patterns []*regexp.Regexp) ([]byte, error) {
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	maskValue(generic, patterns)
	return json.Marshal(generic)
}

// maskValue walks decoded JSON in place.
func maskValue(v any, patterns []*regexp.Regexp) {
	switch t := v.(type) {
	case map[string]any:
		for k, sub := range t {
			if matches(k, patterns) {
				if s, ok := sub.(string); ok && s == "" {
					continue
				}
				t[k] = Mask
				continue
			}
			maskValue(sub, patterns)
		}
	case []any:
		for _, sub := range t {
			maskValue(sub, patterns)
		}
	}
}

func matches(key string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}
