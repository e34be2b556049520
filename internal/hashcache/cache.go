package hashcache

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"io"
	"slices"
	"strings"
	"sync"
	"time"
)

// Entry is the state recorded for one cache key.
type Entry struct {
	Hash        string    `json:"hash,omitempty"`
	Invalidated bool      `json:"invalidated"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Cache remembers the content hash of the last payload successfully published
// for a key. It lives for the lifetime of the process.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// ShouldProcess reports whether payload differs from the last one committed
// under key. A missing or invalidated entry always needs processing.
func (c *Cache) ShouldProcess(key string, payload []byte) bool {
	hash := Hash(payload)

	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || e.Invalidated {
		return true
	}
	return e.Hash != hash
}

// Commit records payload as successfully published under key.
func (c *Cache) Commit(key string, payload []byte) {
	hash := Hash(payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Entry{Hash: hash, UpdatedAt: c.now()}
}

// Invalidate forces the next ShouldProcess for key to return true.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Entry{Invalidated: true, UpdatedAt: c.now()}
}

// Entries returns a copy of the cache content.
func (c *Cache) Entries() map[string]Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Entry, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}

// Hash returns the hex MD5 digest of the canonical form of payload. JSON
// payloads are re-encoded with sorted object keys so that key order and
// whitespace do not change the digest; anything else is hashed as is.
func Hash(payload []byte) string {
	sum := md5.Sum(canonical(payload))
	return hex.EncodeToString(sum[:])
}

func canonical(payload []byte) []byte {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return payload
	}
	// Anything after the first value makes the payload non-JSON.
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		return payload
	}
	// encoding/json writes map keys in sorted order.
	out, err := json.Marshal(v)
	if err != nil {
		return payload
	}
	return out
}

// WeezeventKey builds the key of a ticketing tournament. Ticket ids are sorted
// and de-duplicated so that upstream reordering does not cause a cache miss.
func WeezeventKey(eventID string, ticketIDs []string) string {
	ids := slices.Clone(ticketIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	return "weezevent:" + eventID + ":" + strings.Join(ids, ",")
}

// ToornamentKey builds the key of a bracket tournament.
func ToornamentKey(tournamentID string) string {
	return "toornament:" + tournamentID
}
