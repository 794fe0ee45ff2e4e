package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const progressTable = "progress_state"

// ProgressRepo stores serialized progress, one row per curriculum.
type ProgressRepo struct {
	db *sql.DB
}

// Load appends the stored progress for curriculum to dst.
// It returns an error wrapping fs.ErrNotExist when nothing is stored.
func (r *ProgressRepo) Load(ctx context.Context, curriculum string, dst []byte) ([]byte, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("data").
		From(entsql.Table(progressTable)).
		Where(entsql.EQ("curriculum", curriculum)).
		Query()

	var data []byte
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dst, fmt.Errorf("no progress for %q: %w", curriculum, fs.ErrNotExist)
		}
		return dst, fmt.Errorf("query progress: %w", err)
	}
	return append(dst, data...), nil
}

// Save replaces the stored progress for curriculum.
func (r *ProgressRepo) Save(ctx context.Context, curriculum string, data []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(progressTable).
		Columns("curriculum", "data", "updated_at").
		Values(curriculum, data, time.Now().Unix()).
		OnConflict(
			entsql.ConflictColumns("curriculum"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Delete removes the stored progress for curriculum.
func (r *ProgressRepo) Delete(ctx context.Context, curriculum string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(progressTable).
		Where(entsql.EQ("curriculum", curriculum)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}

// Backend adapts the repo to a single curriculum's progress backend.
func (r *ProgressRepo) Backend(curriculum string) *Backend {
	return &Backend{repo: r, curriculum: curriculum}
}

// Backend stores one curriculum's progress in SQLite. It satisfies
// progress.Backend.
type Backend struct {
	repo       *ProgressRepo
	curriculum string
}

func (b *Backend) Load(dst []byte) ([]byte, error) {
	return b.repo.Load(context.Background(), b.curriculum, dst)
}

func (b *Backend) Save(data []byte) error {
	return b.repo.Save(context.Background(), b.curriculum, data)
}

func (b *Backend) Remove() error {
	return b.repo.Delete(context.Background(), b.curriculum)
}

func (b *Backend) String() string {
	return "sqlite:" + b.curriculum
}
