package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rotaworks/rota-api-go/pkg/dataset"
	"github.com/rotaworks/rota-api-go/pkg/handlers"
	"github.com/rotaworks/rota-api-go/pkg/logger"
	"github.com/rotaworks/rota-api-go/pkg/models"
	"github.com/rotaworks/rota-api-go/pkg/roster"
	"github.com/rotaworks/rota-api-go/pkg/tz"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	log := logger.New()

	dataFile := os.Getenv("DATA_FILE")
	if dataFile == "" {
		dataFile = "data.json"
	}
	store, err := dataset.LoadFile(dataFile)
	if err != nil {
		// Serverless instances must still answer; serve an empty snapshot.
		log.Warn().Err(err).Str("file", dataFile).Msg("serving empty dataset")
		store = dataset.New(models.DataPayload{})
	}

	conv := tz.NewConverter(log)

	h := &handlers.Handler{
		Data:   store,
		Engine: roster.NewEngine(store, conv, log),
		TZ:     conv,
		Log:    log,
	}

	gin.SetMode(gin.ReleaseMode)
	r = gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	handlers.Register(r, h)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
