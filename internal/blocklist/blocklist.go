// Package blocklist records revoked token IDs (JTIs) until the token they
// belong to would have expired on its own. Absence of an entry means the
// token was never revoked.
package blocklist

import (
	"context"
	"time"
)

type Store interface {
	// Add records jti as revoked for ttl. The ttl must cover the longest
	// possible remaining lifetime of any token carrying this jti, so a
	// revoked token can never outlive its entry.
	Add(ctx context.Context, jti string, ttl time.Duration) error

	// Contains reports whether jti has been revoked. Implementations must
	// return the error as-is on store failure; callers treat that as
	// "cannot confirm not-revoked" and reject.
	Contains(ctx context.Context, jti string) (bool, error)
}
