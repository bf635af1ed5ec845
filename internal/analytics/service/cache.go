package service

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"sales-analytics/internal/analytics/model"
	"sales-analytics/internal/fileio"
)

// Cache помнит нормализованный набор для последней пары файлов.
// Одна запись: новая пара вытесняет старую целиком, TTL нет.
type Cache struct {
	opt    Options
	log    zerolog.Logger
	store  *lru.Cache[string, model.Dataset]
	hits   atomic.Int64
	misses atomic.Int64
}

func NewCache(opt Options, logger zerolog.Logger) *Cache {
	store, err := lru.New[string, model.Dataset](1)
	if err != nil {
		// lru.New ошибается только на size <= 0
		panic(err)
	}
	return &Cache{opt: opt, log: logger, store: store}
}

// CacheKey: по содержимому обеих таблиц, а не по порядку вызовов.
func CacheKey(inv, sales fileio.Table) string {
	return inv.Digest + ":" + sales.Digest
}

// Load отдаёт набор из кеша или считает его. hit=true: пересчёта не было.
func (c *Cache) Load(inv, sales fileio.Table) (ds model.Dataset, hit bool, err error) {
	key := CacheKey(inv, sales)
	if ds, ok := c.store.Get(key); ok {
		c.hits.Add(1)
		c.log.Debug().Str("key", shortKey(key)).Msg("pipeline cache hit")
		return ds, true, nil
	}
	c.misses.Add(1)
	// новая пара входов: прежняя запись недействительна, даже если расчёт упадёт
	c.store.Purge()

	ds, err = Normalize(inv, sales, c.opt)
	if err != nil {
		return ds, false, err
	}
	c.store.Add(key, ds)
	c.log.Info().
		Str("key", shortKey(key)).
		Int("raw_rows", ds.Stats.RawRows).
		Int("canonical_rows", ds.Stats.CanonicalRows).
		Int("dropped", ds.Stats.DroppedRows).
		Int("malformed", ds.Stats.Malformed).
		Int("undated", ds.Stats.Undated).
		Int("inventory_rows", ds.Stats.InventoryRows).
		Msg("pipeline normalized")
	return ds, false, nil
}

// Purge: сбросить запись (например, при смене настроек).
func (c *Cache) Purge() { c.store.Purge() }

func (c *Cache) Len() int { return c.store.Len() }

func (c *Cache) Stats() (hits, misses int64) { return c.hits.Load(), c.misses.Load() }

func shortKey(k string) string {
	if len(k) > 12 {
		return k[:12]
	}
	return k
}
