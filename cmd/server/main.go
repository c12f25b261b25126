package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rotaworks/rota-api-go/pkg/database"
	"github.com/rotaworks/rota-api-go/pkg/dataset"
	"github.com/rotaworks/rota-api-go/pkg/handlers"
	"github.com/rotaworks/rota-api-go/pkg/logger"
	"github.com/rotaworks/rota-api-go/pkg/roster"
	"github.com/rotaworks/rota-api-go/pkg/tz"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	log := logger.New()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open()
	if err != nil {
		if os.Getenv("DATA_SOURCE") == "db" {
			log.Fatal().Err(err).Msg("could not open snapshot database")
		}
		log.Warn().Err(err).Msg("usage metering disabled, database unavailable")
		db = nil
	}

	var store *dataset.Store
	if os.Getenv("DATA_SOURCE") == "db" {
		payload, err := database.LoadPayload(db)
		if err != nil {
			log.Fatal().Err(err).Msg("could not load snapshot from database")
		}
		store = dataset.New(payload)
	} else {
		dataFile := os.Getenv("DATA_FILE")
		if dataFile == "" {
			dataFile = "data.json"
		}
		store, err = dataset.LoadFile(dataFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", dataFile).Msg("could not load dataset")
		}
	}

	conv := tz.NewConverter(log)
	if zone := os.Getenv("DEFAULT_TIMEZONE"); zone != "" {
		if err := conv.SetZone(zone); err != nil {
			log.Warn().Err(err).Msg("keeping built-in default viewer zone")
		}
	}

	h := &handlers.Handler{
		Data:   store,
		Engine: roster.NewEngine(store, conv, log),
		TZ:     conv,
		DB:     db,
		Log:    log,
	}

	r := gin.Default()
	handlers.Register(r, h)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Info().Str("port", port).Int("teams", len(store.Teams())).Msg("server starting")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("could not run server")
	}
}
