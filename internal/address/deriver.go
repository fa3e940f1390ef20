package address

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/patrickmn/go-cache"
)

var (
	ErrSaltNotResolvable = errors.New("salt not resolvable")
)

// Deriver computes deterministic addresses from seed tuples. A salt byte is
// searched downwards from 255 until the hash lands in the usable namespace;
// derived pairs are cached so repeat operations skip the search.
type Deriver interface {
	Derive(seeds [][]byte) (string, uint8, error)
	DeriveWithSalt(seeds [][]byte, salt uint8) string
	Verify(addr string, seeds [][]byte, salt uint8) bool
}

type deriver struct {
	programID string
	cache     *cache.Cache
}

type derived struct {
	addr string
	salt uint8
}

func NewDeriver(programID string, c *cache.Cache) Deriver {
	return deriver{programID: programID, cache: c}
}

func (d deriver) Derive(seeds [][]byte) (string, uint8, error) {
	key := d.cacheKey(seeds)
	if hit, ok := d.cache.Get(key); ok {
		cached := hit.(derived)
		return cached.addr, cached.salt, nil
	}

	for salt := 255; salt >= 0; salt-- {
		addr, ok := d.hash(seeds, uint8(salt))
		if !ok {
			continue
		}

		d.cache.Set(key, derived{addr, uint8(salt)}, cache.DefaultExpiration)
		return addr, uint8(salt), nil
	}

	return "", 0, ErrSaltNotResolvable
}

func (d deriver) DeriveWithSalt(seeds [][]byte, salt uint8) string {
	addr, _ := d.hash(seeds, salt)
	return addr
}

func (d deriver) Verify(addr string, seeds [][]byte, salt uint8) bool {
	candidate, ok := d.hash(seeds, salt)
	return ok && candidate == addr
}

func (d deriver) hash(seeds [][]byte, salt uint8) (string, bool) {
	h := sha256.New()
	h.Write([]byte(d.programID))
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write([]byte{salt})

	sum := h.Sum(nil)

	// The zero-prefixed slice of the hash space is reserved, which forces a
	// genuine salt search instead of always landing on 255.
	if sum[0] == 0x00 {
		return "", false
	}

	return hex.EncodeToString(sum), true
}

func (d deriver) cacheKey(seeds [][]byte) string {
	parts := make([]string, 0, len(seeds)+1)
	parts = append(parts, d.programID)
	for _, seed := range seeds {
		parts = append(parts, hex.EncodeToString(seed))
	}

	return strings.Join(parts, ":")
}
