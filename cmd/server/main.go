package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/orquestra-app/orquestra/backend/internal/config"
	"github.com/orquestra-app/orquestra/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Mode == "debug" {
		logger.Init("debug")
	} else {
		logger.Init("info")
	}

	svc := bootstrap(cfg)
	defer svc.shutdown()

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	registerRoutes(r, svc)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Infof("Orquestra listening on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("Server error: %v", err)
	}
}
