package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/wapi/api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps each logical table in its own relational table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) table(ctx context.Context, table string) (*gorm.DB, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	return s.db.WithContext(ctx).Table(model.SQLTableName(table)), nil
}

func (s *GormStore) Get(ctx context.Context, table, partition, row string) (model.Word, bool, error) {
	q, err := s.table(ctx, table)
	if err != nil {
		return model.Word{}, false, err
	}

	var word model.Word
	result := q.Where("partition_key = ? AND row_key = ?", partition, row).Take(&word)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return model.Word{}, false, nil
	}
	if result.Error != nil {
		return model.Word{}, false, fmt.Errorf("failed to get %s/%s/%s: %w", table, partition, row, result.Error)
	}
	return word, true, nil
}

func (s *GormStore) UpsertBatch(ctx context.Context, table string, words []model.Word) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if len(words) == 0 {
		return nil
	}

	name := model.SQLTableName(table)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Table(name).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "partition_key"}, {Name: "row_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"text", "updated_at"}),
		}).Create(&words)
		if result.Error != nil {
			return fmt.Errorf("failed to upsert %d words into %s: %w", len(words), table, result.Error)
		}
		return nil
	})
}

func (s *GormStore) Count(ctx context.Context, table, partition string) (int64, error) {
	q, err := s.table(ctx, table)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := q.Where("partition_key = ?", partition).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s/%s: %w", table, partition, err)
	}
	return count, nil
}

func (s *GormStore) CountFrom(ctx context.Context, table, partition, fromRow string) (int64, error) {
	q, err := s.table(ctx, table)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := q.Where("partition_key = ? AND row_key >= ?", partition, fromRow).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s/%s from %s: %w", table, partition, fromRow, err)
	}
	return count, nil
}

func (s *GormStore) LastSeedRun(ctx context.Context) (model.SeedRun, bool, error) {
	var run model.SeedRun
	result := s.db.WithContext(ctx).Order("created_at DESC").Take(&run)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return model.SeedRun{}, false, nil
	}
	if result.Error != nil {
		return model.SeedRun{}, false, fmt.Errorf("failed to get last seed run: %w", result.Error)
	}
	return run, true, nil
}

func (s *GormStore) LastSeedRunFor(ctx context.Context, table string) (model.SeedRun, bool, error) {
	if err := checkTable(table); err != nil {
		return model.SeedRun{}, false, err
	}

	// Table names never contain one another, so a substring match is exact.
	var run model.SeedRun
	result := s.db.WithContext(ctx).
		Where(clause.Like{Column: clause.Column{Name: "tables"}, Value: "%" + table + "%"}).
		Order("created_at DESC").
		Take(&run)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return model.SeedRun{}, false, nil
	}
	if result.Error != nil {
		return model.SeedRun{}, false, fmt.Errorf("failed to get last seed run for %s: %w", table, result.Error)
	}
	return run, true, nil
}

func (s *GormStore) RecordSeedRun(ctx context.Context, run model.SeedRun) error {
	if err := s.db.WithContext(ctx).Create(&run).Error; err != nil {
		return fmt.Errorf("failed to record seed run: %w", err)
	}
	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
