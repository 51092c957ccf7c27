package out

import "context"

// StateStore is a string-keyed blob store. Get returns apperrors.ErrKeyNotFound
// when nothing has been written under key.
type StateStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
