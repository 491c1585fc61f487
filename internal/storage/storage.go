// Package storage abstracts the object store holding capture payloads. The
// rest of the system only ever round-trips the locator string an
// implementation returns.
package storage

import (
	"context"
	"io"
)

type ObjectStore interface {
	// Put stores the object under key and returns its locator.
	Put(ctx context.Context, key string, r io.Reader) (string, error)
	// Delete removes the object identified by a previously returned locator.
	Delete(ctx context.Context, locator string) error
}
