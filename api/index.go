package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"electronics-store/app"
	"electronics-store/config"
	"electronics-store/models"

	"github.com/gin-gonic/gin"
)

var (
	application *app.App
	initErr     error
	once        sync.Once
)

func initApp() {
	once.Do(func() {
		cfg := config.LoadConfig()
		cfg.AppEnv = "production"

		logger, err := config.NewLogger(cfg)
		if err != nil {
			initErr = err
			return
		}
		application, initErr = app.New(context.Background(), cfg, logger)
	})
}

// Handler is the serverless entry point. The app is built on the first request and
// reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		log.Printf("Failed to initialize app: %v", initErr)
		w.Header().Set("Content-Type", gin.MIMEJSON)
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{
			Success: false,
			Code:    "unavailable",
			Message: "Service unavailable",
		})
		return
	}
	application.Router.ServeHTTP(w, r)
}
