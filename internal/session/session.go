// Package session keeps small per-visitor flag sets ("bags") keyed by the
// session cookie. Bags hold keys only; presence is the value.
package session

import "context"

type Bag interface {
	Has(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key string) error
}

type Store interface {
	Bag(id string) Bag
	Close() error
}
