package main

import (
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"multidrop-routing-service/internal/adapters/repositories"
	"multidrop-routing-service/internal/logger"
	"multidrop-routing-service/internal/platform/db"
)

// dbtool initializes the schema and optionally seeds fleet data from a JSON
// file. Intended for local development and CI, not production provisioning.
func main() {
	log := logger.New("dbtool")

	seedPath := flag.String("seed", "", "path to a fleet seed JSON file (optional)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	database, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()

	if err := repositories.InitSchema(database); err != nil {
		log.Fatal().Err(err).Msg("schema initialization failed")
	}
	log.Info().Msg("schema ready")

	if *seedPath != "" {
		if err := repositories.SeedFromJSON(database, *seedPath); err != nil {
			log.Fatal().Err(err).Msg("seeding failed")
		}
		log.Info().Str("path", *seedPath).Msg("seeding complete")
	}
}
