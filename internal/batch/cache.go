package batch

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"chromalint/internal/models"
)

// resultCache memoizes analysis results keyed by content hash. The engine
// itself never caches; memoization lives here in the batch driver so watch
// mode does not re-analyze unchanged files. Results are immutable once
// produced, so sharing pointers across lookups is safe.
type resultCache struct {
	mu sync.RWMutex
	m  map[uint64]*models.AnalysisResult
}

func newResultCache() *resultCache {
	return &resultCache{m: make(map[uint64]*models.AnalysisResult)}
}

// key hashes path and content together: the path picks the language, so the
// same bytes under a different extension must not collide.
func (c *resultCache) key(path string, content []byte) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(path)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(content)
	return h.Sum64()
}

func (c *resultCache) get(key uint64) (*models.AnalysisResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.m[key]
	return r, ok
}

func (c *resultCache) put(key uint64, result *models.AnalysisResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = result
}
