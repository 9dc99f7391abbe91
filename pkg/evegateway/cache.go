package evegateway

import (
	"net/http"
	"sync"
	"time"
)

// CacheEntry stores a cached ESI response body along with the expiry and
// validator headers ESI returned for it.
type CacheEntry struct {
	Data    []byte    `json:"data"`
	Expires time.Time `json:"expires"`
	ETag    string    `json:"etag,omitempty"`
}

// CacheManager caches ESI responses keyed by request URL.
type CacheManager interface {
	Get(key string) ([]byte, bool, error)
	// GetForNotModified returns cached data even when expired, for reuse
	// after a 304 response.
	GetForNotModified(key string) ([]byte, bool, error)
	Set(key string, data []byte, headers http.Header) error
	SetConditionalHeaders(req *http.Request, key string) error
}

// entryFromHeaders derives the cache lifetime from the ESI Expires/ETag
// headers, defaulting to a short lifetime when ESI sends none.
func entryFromHeaders(data []byte, headers http.Header) CacheEntry {
	entry := CacheEntry{
		Data:    data,
		Expires: time.Now().Add(60 * time.Second),
		ETag:    headers.Get("ETag"),
	}
	if expires := headers.Get("Expires"); expires != "" {
		if t, err := http.ParseTime(expires); err == nil {
			entry.Expires = t
		}
	}
	return entry
}

// MemoryCacheManager is the fallback cache used when Redis is unavailable.
type MemoryCacheManager struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry
}

func NewMemoryCacheManager() *MemoryCacheManager {
	return &MemoryCacheManager{
		entries: make(map[string]CacheEntry),
	}
}

func (m *MemoryCacheManager) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || entry.Expires.Before(time.Now()) {
		return nil, false, nil
	}
	return entry.Data, true, nil
}

func (m *MemoryCacheManager) GetForNotModified(key string) ([]byte, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	return entry.Data, true, nil
}

func (m *MemoryCacheManager) Set(key string, data []byte, headers http.Header) error {
	m.mu.Lock()
	m.entries[key] = entryFromHeaders(data, headers)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCacheManager) SetConditionalHeaders(req *http.Request, key string) error {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if ok && entry.ETag != "" {
		req.Header.Set("If-None-Match", entry.ETag)
	}
	return nil
}
