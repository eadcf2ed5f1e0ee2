package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	libraryadapters "library_backend/internal/feature/library/adapters"
	libraryusecase "library_backend/internal/feature/library/usecase"
	platformdb "library_backend/internal/platform/db"
)

// seedLibrary は投入ファイルの1エントリです。
type seedLibrary struct {
	Name       string `json:"name"`
	FloorCount int    `json:"floor_count"`
	FloorArea  int    `json:"floor_area"`
}

func main() {
	file := flag.String("file", "libraries.json", "path to the library catalog JSON file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found. Using environment variables.")
	}

	db := platformdb.OpenDB()
	libraryRepo := libraryadapters.NewLibraryMySQL(db)
	uc := libraryusecase.NewLibraryUsecase(libraryRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal("failed to read catalog file:", err)
	}

	var entries []seedLibrary
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Fatal("failed to parse catalog file:", err)
	}

	var created, skipped int
	for _, e := range entries {
		if _, err := uc.CreateLibrary(ctx, e.Name, e.FloorCount, e.FloorArea); err != nil {
			if errors.Is(err, libraryusecase.ErrInvalidLibrary) {
				log.Printf("[WARN] skipping invalid entry %q: %v", e.Name, err)
				skipped++
				continue
			}
			log.Fatal("failed to create library:", err)
		}
		created++
	}

	log.Printf("seed ok: %d created, %d skipped", created, skipped)
}
