// Package loader fills the word tables from a word list.
//
// Each length group is shuffled and then keyed three ways: by a dense index
// for the random-source table, by the word itself for the lookup table, and
// by consecutive calendar days starting today (UTC) for the daily table.
// Re-running with a new shuffle reassigns every date, so the daily table is
// only written once unless the caller forces it.
package loader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/wapi/api/internal/model"
	"gorm.io/datatypes"
)

const DefaultBatchSize = 100

var ErrAlreadySeeded = errors.New("daily words were already seeded")

// Writer is the subset of the word store the loader needs.
type Writer interface {
	UpsertBatch(ctx context.Context, table string, words []model.Word) error
	LastSeedRun(ctx context.Context) (model.SeedRun, bool, error)
	LastSeedRunFor(ctx context.Context, table string) (model.SeedRun, bool, error)
	RecordSeedRun(ctx context.Context, run model.SeedRun) error
}

type Options struct {
	// Tables to write; all word tables when empty.
	Tables    []string
	BatchSize int
	// Force rewrites the daily table even when an earlier run already wrote it.
	Force  bool
	DryRun bool
}

type Result struct {
	Run      model.SeedRun
	Counts   map[int]int
	Previous *model.SeedRun
	Written  int
}

// ChecksumMatches reports whether the previous run used the same word list.
func (r *Result) ChecksumMatches() bool {
	return r.Previous != nil && r.Previous.Checksum == r.Run.Checksum
}

type Loader struct {
	store   Writer
	now     func() time.Time
	shuffle func(n int, swap func(i, j int))
	newID   func() string
}

func New(w Writer) *Loader {
	return &Loader{
		store:   w,
		now:     time.Now,
		shuffle: rand.Shuffle,
		newID:   uuid.NewString,
	}
}

// Group normalizes words (trim, lowercase), drops duplicates and keeps the
// supported lengths, preserving input order within each length.
func Group(words []string) map[int][]string {
	groups := make(map[int][]string)
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		word := strings.ToLower(strings.TrimSpace(w))
		if word == "" {
			continue
		}
		size := utf8.RuneCountInString(word)
		if size < model.MinWordSize || size > model.MaxWordSize {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		groups[size] = append(groups[size], word)
	}
	return groups
}

// Checksum identifies a grouped word list independently of input order.
func Checksum(groups map[int][]string) string {
	var all []string
	for _, words := range groups {
		all = append(all, words...)
	}
	sort.Strings(all)

	h := sha256.New()
	for _, w := range all {
		h.Write([]byte(w))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Records keys one shuffled length group for a table. Daily rows advance one
// day per word from start.
func Records(table string, size int, words []string, start time.Time) []model.Word {
	partition := strconv.Itoa(size)
	records := make([]model.Word, 0, len(words))
	for i, word := range words {
		var row string
		switch table {
		case model.TableRandom:
			row = strconv.Itoa(i + 1)
		case model.TableLookup:
			row = word
		case model.TableDaily:
			row = model.DayKey(start.AddDate(0, 0, i))
		}
		records = append(records, model.Word{PartitionKey: partition, RowKey: row, Text: word})
	}
	return records
}

func (l *Loader) today() time.Time {
	now := l.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (l *Loader) Run(ctx context.Context, words []string, opts Options) (*Result, error) {
	tables := opts.Tables
	if len(tables) == 0 {
		tables = model.Tables
	}
	writesDaily := false
	for _, table := range tables {
		if model.SQLTableName(table) == "" {
			return nil, fmt.Errorf("unknown table %q", table)
		}
		if table == model.TableDaily {
			writesDaily = true
		}
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	groups := Group(words)
	if len(groups) == 0 {
		return nil, errors.New("no words of a supported length")
	}

	sizes := make([]int, 0, len(groups))
	for size := range groups {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)

	counts := make(map[int]int, len(groups))
	countsJSON := make(map[string]int, len(groups))
	for _, size := range sizes {
		group := groups[size]
		l.shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })
		counts[size] = len(group)
		countsJSON[strconv.Itoa(size)] = len(group)
	}

	rawCounts, err := json.Marshal(countsJSON)
	if err != nil {
		return nil, err
	}

	start := l.today()
	result := &Result{
		Run: model.SeedRun{
			ID:        l.newID(),
			Checksum:  Checksum(groups),
			StartDate: model.DayKey(start),
			Tables:    strings.Join(tables, ","),
			Counts:    datatypes.JSON(rawCounts),
		},
		Counts: counts,
	}

	prev, found, err := l.store.LastSeedRun(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		result.Previous = &prev
	}

	if writesDaily && !opts.Force {
		seeded, found, err := l.store.LastSeedRunFor(ctx, model.TableDaily)
		if err != nil {
			return nil, err
		}
		if found {
			result.Previous = &seeded
			return result, fmt.Errorf("%w: run %s on %s (same word list: %t)",
				ErrAlreadySeeded, seeded.ID, seeded.StartDate, result.ChecksumMatches())
		}
	}

	if opts.DryRun {
		return result, nil
	}

	for _, table := range tables {
		for _, size := range sizes {
			records := Records(table, size, groups[size], start)
			total := len(records)
			for i := 0; i < total; i += batchSize {
				end := i + batchSize
				if end > total {
					end = total
				}
				log.Printf("Saving %s size %d [%d of %d]", table, size, i+1, total)
				if err := l.store.UpsertBatch(ctx, table, records[i:end]); err != nil {
					return result, err
				}
				result.Written += end - i
			}
		}
	}

	result.Run.CreatedAt = l.now().UTC()
	if err := l.store.RecordSeedRun(ctx, result.Run); err != nil {
		return result, err
	}

	return result, nil
}
