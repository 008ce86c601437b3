package database

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/kdimtricp/auteur/internal/models"
)

// CatalogRepository stores the last fetched candidate pool so a restart can
// serve recommendations before TMDb is reachable again.
type CatalogRepository struct {
	db  *DB
	now func() time.Time
}

func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db, now: time.Now}
}

// ReplaceSnapshot swaps the stored pool for movies in a single transaction.
// Pool order is kept; a repeated movie ID keeps its first position.
func (r *CatalogRepository) ReplaceSnapshot(ctx context.Context, movies []models.Movie) error {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM catalog_movies"); err != nil {
		return fmt.Errorf("failed to clear catalog snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, r.db.rebind(
		"INSERT INTO catalog_movies (movie_id, position, payload, fetched_at) VALUES (?, ?, ?, ?)"))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	fetchedAt := r.now().Unix()
	seen := make(map[int]bool, len(movies))
	position := 0
	for _, movie := range movies {
		if seen[movie.ID] {
			continue
		}
		seen[movie.ID] = true

		payload, err := json.Marshal(movie)
		if err != nil {
			return fmt.Errorf("failed to encode movie %d: %w", movie.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, movie.ID, position, string(payload), fetchedAt); err != nil {
			return fmt.Errorf("failed to insert movie %d: %w", movie.ID, err)
		}
		position++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored pool in its original order. An empty table
// yields a zero snapshot and no error.
func (r *CatalogRepository) LoadSnapshot(ctx context.Context) (models.CatalogSnapshot, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		"SELECT payload, fetched_at FROM catalog_movies ORDER BY position")
	if err != nil {
		return models.CatalogSnapshot{}, fmt.Errorf("failed to query catalog snapshot: %w", err)
	}
	defer rows.Close()

	var snap models.CatalogSnapshot
	var oldest int64
	for rows.Next() {
		var (
			payload   string
			fetchedAt int64
		)
		if err := rows.Scan(&payload, &fetchedAt); err != nil {
			return models.CatalogSnapshot{}, fmt.Errorf("failed to scan catalog row: %w", err)
		}

		var movie models.Movie
		if err := json.Unmarshal([]byte(payload), &movie); err != nil {
			return models.CatalogSnapshot{}, fmt.Errorf("failed to decode catalog row: %w", err)
		}
		snap.Movies = append(snap.Movies, movie)

		if oldest == 0 || fetchedAt < oldest {
			oldest = fetchedAt
		}
	}
	if err := rows.Err(); err != nil {
		return models.CatalogSnapshot{}, fmt.Errorf("failed to read catalog snapshot: %w", err)
	}

	if len(snap.Movies) > 0 {
		snap.FetchedAt = time.Unix(oldest, 0)
	}
	return snap, nil
}

func (r *CatalogRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM catalog_movies").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count catalog movies: %w", err)
	}
	return count, nil
}
