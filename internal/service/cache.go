package service

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/model"
)

// cachedExtraction is either a spec or a missing anchor
type cachedExtraction struct {
	spec          *model.SearchSpec
	missingAnchor bool
}

// ExtractionCache memoises extractor output. Extraction is deterministic in
// (message, pinned), so a hit is exactly what a fresh run would return.
type ExtractionCache struct {
	cache *lru.Cache[string, cachedExtraction]
}

// NewExtractionCache creates an LRU cache holding at most size results
func NewExtractionCache(size int) (*ExtractionCache, error) {
	c, err := lru.New[string, cachedExtraction](size)
	if err != nil {
		return nil, err
	}
	return &ExtractionCache{cache: c}, nil
}

func cacheKey(msg string, pinned bool) string {
	if pinned {
		return "p\x00" + msg
	}
	return "u\x00" + msg
}

// Get returns a private copy of the cached spec, or missingAnchor when the
// message previously failed with ErrMissingAnchor
func (c *ExtractionCache) Get(msg string, pinned bool) (spec *model.SearchSpec, missingAnchor bool, ok bool) {
	v, ok := c.cache.Get(cacheKey(msg, pinned))
	if !ok {
		return nil, false, false
	}
	return v.spec.Clone(), v.missingAnchor, true
}

// Put stores a copy of the result
func (c *ExtractionCache) Put(msg string, pinned bool, spec *model.SearchSpec, missingAnchor bool) {
	c.cache.Add(cacheKey(msg, pinned), cachedExtraction{spec: spec.Clone(), missingAnchor: missingAnchor})
}

// Len returns the number of cached results
func (c *ExtractionCache) Len() int {
	return c.cache.Len()
}
