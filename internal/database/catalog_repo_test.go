package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdimtricp/auteur/internal/models"
)

func TestCatalogRepository_EmptySnapshot(t *testing.T) {
	repo := NewCatalogRepository(setupTestDB(t))

	snap, err := repo.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Movies)
	assert.True(t, snap.FetchedAt.IsZero())
}

func TestCatalogRepository_ReplaceAndLoad(t *testing.T) {
	repo := NewCatalogRepository(setupTestDB(t))
	fetched := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fetched }
	ctx := context.Background()

	poster := "/poster.jpg"
	movies := []models.Movie{
		{
			ID:               496243,
			Title:            "Parasite",
			ReleaseDate:      "2019-05-30",
			Genres:           []models.Genre{{ID: 35, Name: "Comedy"}, {ID: 53, Name: "Thriller"}},
			VoteAverage:      8.5,
			VoteCount:        18000,
			OriginalLanguage: "ko",
			PosterPath:       &poster,
		},
		{ID: 129, Title: "Spirited Away", OriginalLanguage: "ja"},
		{ID: 496243, Title: "Parasite (duplicate)"},
		{ID: 238, Title: "The Godfather", OriginalLanguage: "en"},
	}
	require.NoError(t, repo.ReplaceSnapshot(ctx, movies))

	snap, err := repo.LoadSnapshot(ctx)
	require.NoError(t, err)

	require.Len(t, snap.Movies, 3)
	assert.Equal(t, "Parasite", snap.Movies[0].Title)
	assert.Equal(t, "Spirited Away", snap.Movies[1].Title)
	assert.Equal(t, "The Godfather", snap.Movies[2].Title)
	assert.True(t, snap.Movies[0].HasGenre("thriller"))
	require.NotNil(t, snap.Movies[0].PosterPath)
	assert.Equal(t, poster, *snap.Movies[0].PosterPath)
	assert.True(t, fetched.Equal(snap.FetchedAt))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCatalogRepository_ReplaceDropsPreviousPool(t *testing.T) {
	repo := NewCatalogRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceSnapshot(ctx, []models.Movie{{ID: 1, Title: "Old"}, {ID: 2, Title: "Older"}}))
	require.NoError(t, repo.ReplaceSnapshot(ctx, []models.Movie{{ID: 3, Title: "New"}}))

	snap, err := repo.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Movies, 1)
	assert.Equal(t, "New", snap.Movies[0].Title)
}

func TestCatalogRepository_CanceledContextKeepsSnapshot(t *testing.T) {
	repo := NewCatalogRepository(setupTestDB(t))
	require.NoError(t, repo.ReplaceSnapshot(context.Background(), []models.Movie{{ID: 1, Title: "Kept"}}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, repo.ReplaceSnapshot(ctx, []models.Movie{{ID: 2, Title: "Lost"}}))

	snap, err := repo.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Movies, 1)
	assert.Equal(t, "Kept", snap.Movies[0].Title)
}
