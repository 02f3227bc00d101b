// Command snekstats summarises recorded rounds with DuckDB.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	dataDir := flag.String("data", getEnvOrDefault("SNEK_RECORD_DIR", "rounds"), "Directory containing recorded rounds")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := loadReport(ctx, *dataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", *dataDir).Msg("load rounds")
	}
	if err := writeReport(os.Stdout, report); err != nil {
		log.Fatal().Err(err).Msg("write report")
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
