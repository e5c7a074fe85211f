package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/ports"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of remembered AI batches.
const DefaultCacheSize = 256

// completerCacheSize bounds the number of live remote clients.
const completerCacheSize = 8

// completerKey identifies the client a settings value needs. The API key is
// hashed so it does not sit in memory twice in the clear.
func completerKey(s domain.UserSettings) string {
	sum := sha256.Sum256([]byte(s.APIKey))
	return strings.Join([]string{string(s.AIProvider), s.APIURL, s.APIModel, hex.EncodeToString(sum[:])}, "|")
}

func newCompleterCache() *lru.Cache[string, ports.Completer] {
	c, err := lru.New[string, ports.Completer](completerCacheSize)
	if err != nil {
		// Only a non-positive size fails.
		panic(err)
	}
	return c
}

// resultCache remembers AI batches by seed so a re-render with the same seed
// returns the same cards. A nil cache is valid and stores nothing.
type resultCache struct {
	entries *lru.Cache[string, any]
}

func newResultCache(size int) (*resultCache, error) {
	if size <= 0 {
		return nil, nil
	}
	c, err := lru.New[string, any](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}
	return &resultCache{entries: c}, nil
}

func cacheKey(kind domain.GenerationKind, settings domain.UserSettings, seed int64, parts ...string) string {
	return fmt.Sprintf("%s|%s|%s|%s|%d|%s", kind, settings.AIProvider, settings.APIModel, settings.Language, seed, strings.Join(parts, "\x1f"))
}

func (c *resultCache) lenses(key string) ([]domain.LensCard, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	cards, ok := v.([]domain.LensCard)
	return append([]domain.LensCard(nil), cards...), ok
}

func (c *resultCache) actions(key string) ([]domain.MicroAction, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	actions, ok := v.([]domain.MicroAction)
	return append([]domain.MicroAction(nil), actions...), ok
}

func (c *resultCache) add(key string, v any) {
	if c == nil {
		return
	}
	c.entries.Add(key, v)
}

// Len reports the number of cached batches.
func (c *resultCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
