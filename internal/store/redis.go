package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wapi/api/internal/model"
)

const seedRunsKey = "seed_runs"

// RedisStore keeps one hash per table and partition, e.g. "DailyEN:6",
// mapping row keys to word text.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Connected to Redis at %s", opts.Addr)
	return NewRedisStoreFromClient(client), nil
}

func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// HashKey returns the hash holding one partition of a table.
func HashKey(table, partition string) string {
	return table + ":" + partition
}

func (s *RedisStore) Get(ctx context.Context, table, partition, row string) (model.Word, bool, error) {
	if err := checkTable(table); err != nil {
		return model.Word{}, false, err
	}

	text, err := s.client.HGet(ctx, HashKey(table, partition), row).Result()
	if errors.Is(err, redis.Nil) {
		return model.Word{}, false, nil
	}
	if err != nil {
		return model.Word{}, false, fmt.Errorf("failed to get %s/%s/%s: %w", table, partition, row, err)
	}
	return model.Word{PartitionKey: partition, RowKey: row, Text: text}, true, nil
}

func (s *RedisStore) UpsertBatch(ctx context.Context, table string, words []model.Word) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if len(words) == 0 {
		return nil
	}

	fields := make(map[string][]interface{})
	for _, w := range words {
		key := HashKey(table, w.PartitionKey)
		fields[key] = append(fields[key], w.RowKey, w.Text)
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, values := range fields {
			pipe.HSet(ctx, key, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to upsert %d words into %s: %w", len(words), table, err)
	}
	return nil
}

func (s *RedisStore) Count(ctx context.Context, table, partition string) (int64, error) {
	if err := checkTable(table); err != nil {
		return 0, err
	}
	n, err := s.client.HLen(ctx, HashKey(table, partition)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count %s/%s: %w", table, partition, err)
	}
	return n, nil
}

func (s *RedisStore) CountFrom(ctx context.Context, table, partition, fromRow string) (int64, error) {
	if err := checkTable(table); err != nil {
		return 0, err
	}
	keys, err := s.client.HKeys(ctx, HashKey(table, partition)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count %s/%s from %s: %w", table, partition, fromRow, err)
	}

	var n int64
	for _, k := range keys {
		if k >= fromRow {
			n++
		}
	}
	return n, nil
}

// seedRunsTableKey lists the runs that wrote one table, newest first.
func seedRunsTableKey(table string) string {
	return seedRunsKey + ":" + table
}

// LastSeedRun reads the head of the seed run list, which is kept newest first.
func (s *RedisStore) LastSeedRun(ctx context.Context) (model.SeedRun, bool, error) {
	return s.headSeedRun(ctx, seedRunsKey)
}

func (s *RedisStore) LastSeedRunFor(ctx context.Context, table string) (model.SeedRun, bool, error) {
	if err := checkTable(table); err != nil {
		return model.SeedRun{}, false, err
	}
	return s.headSeedRun(ctx, seedRunsTableKey(table))
}

func (s *RedisStore) headSeedRun(ctx context.Context, key string) (model.SeedRun, bool, error) {
	raw, err := s.client.LIndex(ctx, key, 0).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.SeedRun{}, false, nil
	}
	if err != nil {
		return model.SeedRun{}, false, fmt.Errorf("failed to get last seed run from %s: %w", key, err)
	}

	var run model.SeedRun
	if err := json.Unmarshal(raw, &run); err != nil {
		return model.SeedRun{}, false, fmt.Errorf("failed to decode seed run: %w", err)
	}
	return run, true, nil
}

func (s *RedisStore) RecordSeedRun(ctx context.Context, run model.SeedRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	raw, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to encode seed run: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, seedRunsKey, raw)
		for _, table := range strings.Split(run.Tables, ",") {
			if table != "" {
				pipe.LPush(ctx, seedRunsTableKey(table), raw)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record seed run: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
