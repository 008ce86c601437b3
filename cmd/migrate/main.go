package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/kdimtricp/auteur/internal/config"
	"github.com/kdimtricp/auteur/internal/database"
)

func main() {
	var (
		migrationsPath = flag.String("migrations", "", "Directory of NNN_name.sql files (default: migrations built into the binary)")
		status         = flag.Bool("status", false, "Show migration status only")
	)
	flag.Parse()

	_ = godotenv.Load()

	// Connection settings come from the same config file and DB_* variables
	// the server reads.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.NewDB(cfg.Database.DBConfig())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	var source fs.FS
	if *migrationsPath != "" {
		source = os.DirFS(*migrationsPath)
	}
	migrator := database.NewMigrator(db, source)
	ctx := context.Background()

	if *status {
		migrations, applied, err := migrator.Status(ctx)
		if err != nil {
			log.Fatal("Failed to read migration status:", err)
		}

		fmt.Println("Migration Status:")
		fmt.Println("=================")
		for _, m := range migrations {
			state := "pending"
			if applied[m.Version] {
				state = "applied"
			}
			fmt.Printf("%s - %s [%s]\n", m.Version, m.Name, state)
		}
		return
	}

	fmt.Printf("Running migrations against %s database...\n", db.Type())
	if err := migrator.Run(ctx); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	fmt.Println("Migrations completed successfully!")
}
