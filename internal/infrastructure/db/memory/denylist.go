package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
)

// Denylist keeps revoked token ids in a bigcache instance. Entries share one
// life window, which must be at least the token TTL.
type Denylist struct {
	cache *bigcache.BigCache
	now   func() time.Time
}

func NewDenylist(lifeWindow time.Duration) (*Denylist, error) {
	cfg := bigcache.DefaultConfig(lifeWindow)
	cfg.Verbose = false

	cache, err := bigcache.NewBigCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("denylist cache: %w", err)
	}
	return &Denylist{cache: cache, now: time.Now}, nil
}

func (d *Denylist) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if !until.After(d.now()) {
		return nil
	}
	if err := d.cache.Set(tokenID, []byte{1}); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (d *Denylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	buf, err := d.cache.Get(tokenID)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return len(buf) > 0 && buf[0] == 1, nil
}

// Close stops the cache's cleanup goroutine.
func (d *Denylist) Close() error {
	return d.cache.Close()
}
