// Package store reads and writes word records keyed by
// (partition = word length, row = index, word text or day key).
//
// A missing record is reported as found == false with a nil error; errors
// are reserved for backend failures.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/wapi/api/internal/model"
)

var ErrUnknownTable = errors.New("unknown word table")

type Store interface {
	Get(ctx context.Context, table, partition, row string) (model.Word, bool, error)
	// UpsertBatch writes words atomically, replacing rows with the same keys.
	UpsertBatch(ctx context.Context, table string, words []model.Word) error
	Count(ctx context.Context, table, partition string) (int64, error)
	// CountFrom counts rows whose row key sorts at or after fromRow.
	CountFrom(ctx context.Context, table, partition, fromRow string) (int64, error)
	LastSeedRun(ctx context.Context) (model.SeedRun, bool, error)
	// LastSeedRunFor returns the newest run that wrote table.
	LastSeedRunFor(ctx context.Context, table string) (model.SeedRun, bool, error)
	RecordSeedRun(ctx context.Context, run model.SeedRun) error
	Ping(ctx context.Context) error
	Close() error
}

func checkTable(table string) error {
	if model.SQLTableName(table) == "" {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return nil
}
