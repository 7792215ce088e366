package main

import (
	"log"

	"whisp/config"
	"whisp/controllers"
	"whisp/logger"
	"whisp/routes"
	"whisp/store"
	"whisp/uploader"
	"whisp/utils"
	"whisp/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	v, err := config.LoadConfig("config")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}

	appLog := logger.New("whisp", cfg.Logger.Level, cfg.Logger.Format)

	db, err := utils.SetupDatabase(cfg, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to setup database")
	}
	defer func() {
		if err := utils.CloseDatabase(db); err != nil {
			appLog.WithError(err).Error("Error closing database")
		}
	}()

	st := store.NewPostgres(db)
	up := uploader.NewLocal(cfg.Upload.Dir, cfg.Upload.MaxBytes, appLog.Named("uploader"))

	hub := ws.NewHub(appLog.Named("hub"))
	go hub.Run()

	controllers.StartUploadJanitor(st, cfg, appLog)

	if cfg.Server.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	routes.Register(r, routes.Controllers{
		Auth:    controllers.NewAuthController(st, up, cfg, appLog),
		Message: controllers.NewMessageController(st, up, hub, appLog),
		WS:      controllers.NewWSController(hub, appLog),
	}, st, cfg)

	appLog.WithField("port", cfg.Server.Port).Info("Server starting")
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		appLog.WithError(err).Fatal("Server exited")
	}
}
