package main

import (
	"agv-route-service/internal/adapters/repositories"
	"agv-route-service/internal/config"
	"agv-route-service/internal/domain"
	"agv-route-service/internal/platform/db"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// dbtool creates the layout tables and seeds them from SEED_PATH, or from the
// compiled-in plant layout when that file does not exist.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/layouts/jlr-plant.yaml")
	if err := initAndSeed(ctx, conn, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	layout, err := seedLayout(ctx, seedPath)
	if err != nil {
		return err
	}

	log.Printf("Seeding layout name=%s waypoints=%d edges=%d", layout.Name, layout.Graph.Len(), layout.Graph.EdgeCount())
	if err := repositories.SeedLayout(ctx, conn, layout); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Println("Seeding complete.")

	return nil
}

func seedLayout(ctx context.Context, seedPath string) (*domain.Layout, error) {
	layout, err := repositories.NewYAMLLayoutRepository(seedPath).LoadLayout(ctx)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("seed file %s not found, using builtin layout %s", seedPath, domain.ReferenceLayoutName)
		return domain.ReferenceLayout(), nil
	}
	return layout, err
}
