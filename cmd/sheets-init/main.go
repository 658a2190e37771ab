// Command sheets-init verifies the Google Sheets service account
// credentials and prepares the records sheet for the current year.
// Run it once before starting the export worker against a fresh
// spreadsheet.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	gsheet "studytrack/internal/sheets/google"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		log.Fatalf("sheets client: %v", err)
	}

	if err := client.EnsureSheet(ctx); err != nil {
		log.Fatalf("ensure records sheet: %v", err)
	}

	log.Println("records sheet ready")
}
