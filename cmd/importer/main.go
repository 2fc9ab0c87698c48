package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/samirrijal/restroomfinder/internal/adapters/postal"
	"github.com/samirrijal/restroomfinder/internal/adapters/postgres"
	"github.com/samirrijal/restroomfinder/internal/pkg/config"
)

// batchSize bounds the rows sent per upsert round trip.
const batchSize = 1000

func main() {
	cfg, err := config.Load("restroomfinder-importer")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.ValidateDatabase(); err != nil {
		log.Fatalf("config: %v", err)
	}

	// Source: CLI arg (path or URL), else postal.path
	source := cfg.Postal.Path
	if len(os.Args) > 1 {
		source = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	r, err := open(ctx, source)
	if err != nil {
		log.Fatalf("open %s: %v", source, err)
	}
	defer r.Close()

	codes, err := postal.Decode(r)
	if err != nil {
		log.Fatalf("decode %s: %v", source, err)
	}
	log.Printf("importing %d postal codes from %s", len(codes), source)

	repo := postgres.NewPostalCodeRepo(db)
	for start := 0; start < len(codes); start += batchSize {
		end := start + batchSize
		if end > len(codes) {
			end = len(codes)
		}
		if err := repo.UpsertBatch(ctx, codes[start:end]); err != nil {
			log.Fatalf("upsert rows %d-%d: %v", start, end, err)
		}
	}

	log.Println("import complete")
}

func open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return os.Open(source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 120 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, source)
	}
	return resp.Body, nil
}
