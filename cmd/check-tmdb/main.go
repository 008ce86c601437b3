package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/kdimtricp/auteur/internal/config"
	"github.com/kdimtricp/auteur/internal/database"
	"github.com/kdimtricp/auteur/internal/tmdb"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	fmt.Println("🔍 Checking TMDb Integration")
	fmt.Println("============================")

	client := tmdb.NewClient(cfg.TMDb.ClientConfig())
	if !client.Configured() {
		fmt.Println("⚠️  WARNING: TMDB_API_KEY is not set!")
		fmt.Println("   Get a key at https://www.themoviedb.org/settings/api")
		os.Exit(1)
	}
	fmt.Printf("✅ API key configured (%s, language %s)\n\n", cfg.TMDb.BaseURL, cfg.TMDb.Language)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.TMDb.Timeout)
	defer cancel()

	start := time.Now()
	genres, err := client.Genres(ctx)
	if err != nil {
		fmt.Printf("❌ Genre list request failed: %v\n", err)
		fmt.Printf("   Circuit breaker: %s\n", client.BreakerState())
		os.Exit(1)
	}
	fmt.Printf("🎭 Genres: %d (in %s)\n", len(genres), time.Since(start).Round(time.Millisecond))

	page, err := client.TopRated(ctx, 1)
	if err != nil {
		fmt.Printf("❌ Top rated request failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("🏆 Top rated: %d movies across %d pages\n", page.TotalResults, page.TotalPages)

	names := tmdb.GenreNames(genres)
	for i, m := range page.Results {
		if i == 5 {
			break
		}
		m = tmdb.HydrateGenres(m, names)
		fmt.Printf("   %d. %s (%s) %.1f %v\n", i+1, m.Title, m.ReleaseDate, m.VoteAverage, m.GenreNames())
	}
	fmt.Println()

	if !cfg.Database.Enabled {
		fmt.Println("💾 Snapshot store: disabled")
		return
	}

	db, err := database.NewDB(cfg.Database.DBConfig())
	if err != nil {
		fmt.Printf("❌ Snapshot store unreachable: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := database.NewCatalogRepository(db)
	count, err := repo.Count(ctx)
	if err != nil {
		fmt.Println("❌ No catalog_movies table found (run cmd/migrate first)")
		return
	}
	snapshot, err := repo.LoadSnapshot(ctx)
	if err != nil {
		log.Fatal("Failed to load snapshot:", err)
	}

	if count == 0 {
		fmt.Println("💾 Snapshot store: empty, the server will fill it on the first recommendation")
		return
	}
	age := time.Since(snapshot.FetchedAt).Round(time.Minute)
	state := "fresh"
	if age > cfg.TMDb.SnapshotTTL {
		state = "stale"
	}
	fmt.Printf("💾 Snapshot store: %d movies, fetched %s ago (%s)\n", count, age, state)
}
