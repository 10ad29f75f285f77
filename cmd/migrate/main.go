// Command migrate creates the database schema and optionally loads unit
// frames from tabular files into it.
//
// Usage: migrate <database_url> [frames_dir]
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"goseg/adapters/postgres"
	"goseg/adapters/segio"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate <database_url> [frames_dir]")
	}
	databaseURL := os.Args[1]

	db, err := postgres.Connect(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Schema up to date")

	if len(os.Args) < 3 {
		return
	}
	framesDir := os.Args[2]

	files, err := findFrameFiles(framesDir)
	if err != nil {
		log.Fatalf("Failed to scan %s: %v", framesDir, err)
	}
	log.Printf("Found %d frame files to load", len(files))

	repo := postgres.NewFrameRepository(db)
	ctx := context.Background()

	loaded, skipped := 0, 0
	for _, file := range files {
		f, err := segio.NewDataReader(file, "").Load(ctx)
		if err != nil {
			log.Printf("Failed to load frame from %s: %v", file, err)
			skipped++
			continue
		}

		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		if _, err := repo.Save(ctx, name, f); err != nil {
			log.Printf("Failed to save frame %s: %v", name, err)
			skipped++
			continue
		}

		loaded++
		log.Printf("Loaded frame %s (%d units, fingerprint %s)", name, f.Len(), f.Fingerprint())
	}

	log.Printf("Load complete: %d loaded, %d skipped", loaded, skipped)
}

func findFrameFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv", ".xlsx":
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
