package repository

import "context"

// UnitOfWork runs a function inside a single storage transaction. Repositories
// participate through the context so that sequence allocation, document/item
// inserts and outbox appends commit or roll back together.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
