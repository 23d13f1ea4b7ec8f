// Package repository defines the record store interface and errors.
package repository

import (
	"context"

	"github.com/okian/roster/internal/domain/record"
)

// Collection names used by the service.
const (
	Users    = "users"
	Products = "products"
)

// Store provides read/write access to named, ordered record collections.
type Store interface {
	// List returns every record of a collection in insertion order.
	// An unknown collection yields an empty slice, never an error.
	List(ctx context.Context, collection string) ([]record.Record, error)

	// Append adds a record to the end of a collection unconditionally,
	// including when it lacks an id or duplicates an existing one.
	Append(ctx context.Context, collection string, rec record.Record) error

	// MergeFirst shallow-merges patch into the first record whose integer id
	// equals id and returns a copy of the merged record.
	// Returns ErrNotFound when no record matches. Records without a usable
	// integer id are skipped during the scan.
	MergeFirst(ctx context.Context, collection string, id int64, patch record.Record) (record.Record, error)

	// Count returns the number of records in a collection.
	Count(ctx context.Context, collection string) int
}
