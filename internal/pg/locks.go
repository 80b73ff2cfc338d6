package pg

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UnlockFunc releases a held advisory lock. Call it exactly once.
type UnlockFunc func(ctx context.Context) error

// AdvisoryLocker is a named-mutex service over Postgres session advisory
// locks. A held lock pins a pool connection for its whole lifetime, since
// pg_advisory_unlock must run on the session that acquired the lock.
type AdvisoryLocker struct {
	pool *pgxpool.Pool
}

func NewAdvisoryLocker(pool *pgxpool.Pool) *AdvisoryLocker {
	return &AdvisoryLocker{pool: pool}
}

// LockKey hashes a namespaced id into the bigint keyspace of
// pg_advisory_lock.
func LockKey(namespace string, id int64) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s:%d", namespace, id)
	return int64(h.Sum64())
}

// TryAcquire attempts to take the session lock for key without blocking.
// Returns ok=false when another session holds it; on success the returned
// UnlockFunc unlocks and unpins the connection.
func (l *AdvisoryLocker) TryAcquire(ctx context.Context, key int64) (UnlockFunc, bool, error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("can't acquire connection for advisory lock: %w", err)
	}

	var got bool
	if err := conn.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, key).Scan(&got); err != nil {
		conn.Release()
		return nil, false, fmt.Errorf("pg_try_advisory_lock failed: %w", err)
	}
	if !got {
		conn.Release()
		return nil, false, nil
	}

	unlock := func(ctx context.Context) error {
		defer conn.Release()
		var released bool
		if err := conn.QueryRow(ctx, `SELECT pg_advisory_unlock($1)`, key).Scan(&released); err != nil {
			return fmt.Errorf("pg_advisory_unlock failed: %w", err)
		}
		if !released {
			return fmt.Errorf("advisory lock %d was not held by this session", key)
		}
		return nil
	}
	return unlock, true, nil
}
