package lookup

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// Cache stores serialized weather payloads in sqlite keyed by the
// normalized query. Entries expire after the configured TTL; expired
// rows are skipped on read and removed by the periodic purge job.
type Cache struct {
	db  *sqlx.DB
	ttl time.Duration

	now func() time.Time
}

// NewCache wraps an open database handle.
func NewCache(db *sqlx.DB, ttl time.Duration) *Cache {
	return &Cache{db: db, ttl: ttl, now: time.Now}
}

type cacheRow struct {
	Payload   []byte `db:"payload"`
	CreatedAt int64  `db:"created_at"`
}

// Get returns the cached payload for key if present and fresh.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var row cacheRow
	err := c.db.GetContext(ctx, &row,
		`SELECT payload, created_at FROM lookup_cache WHERE cache_key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if c.now().Unix()-row.CreatedAt >= int64(c.ttl.Seconds()) {
		return nil, false, nil
	}
	return row.Payload, true, nil
}

// Put stores or refreshes the payload for key.
func (c *Cache) Put(ctx context.Context, key string, payload []byte) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO lookup_cache (cache_key, payload, created_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at`,
		key, payload, c.now().Unix())
	return err
}

// PurgeExpired deletes rows older than the TTL and reports how many.
func (c *Cache) PurgeExpired(ctx context.Context) (int64, error) {
	cutoff := c.now().Unix() - int64(c.ttl.Seconds())
	res, err := c.db.ExecContext(ctx, `DELETE FROM lookup_cache WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Size returns the number of cached rows, expired included.
func (c *Cache) Size(ctx context.Context) (int64, error) {
	var n int64
	err := c.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM lookup_cache`)
	return n, err
}
