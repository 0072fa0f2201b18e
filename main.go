package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/IbroIT/SU-back-back-sub001/config"
	"github.com/IbroIT/SU-back-back-sub001/database"
	"github.com/IbroIT/SU-back-back-sub001/routes"
	"github.com/IbroIT/SU-back-back-sub001/services"
	"github.com/IbroIT/SU-back-back-sub001/storage"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

func main() {
	cfg := config.LoadConfig()
	config.InitSite(cfg.Site)

	if err := utils.InitLogger(cfg.LogDir, cfg.LogLevel); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer utils.SyncLogger()
	logger := utils.Logger()

	// Часовой пояс Кыргызстана: от него зависит, какой день считается «вчера»
	utils.SetLocation(cfg.Timezone)

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("postgres", zap.Error(err))
	}
	logger.Info("Connected to PostgreSQL")

	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to migrate", zap.Error(err))
	}
	logger.Info("Migration complete")

	if err := database.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatal("failed to seed admin", zap.Error(err))
	}
	if err := database.SeedMediaCategories(db); err != nil {
		logger.Fatal("failed to seed media categories", zap.Error(err))
	}

	rdb, err := database.ConnectRedis(ctx, cfg)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()
	logger.Info("Connected to Redis")

	store, err := storage.New(ctx, cfg)
	if err != nil {
		logger.Fatal("object storage", zap.Error(err))
	}
	logger.Info("Object storage ready", zap.String("driver", cfg.StorageDriver))

	if cfg.StatsCron != "" && cfg.StatsCron != "off" {
		cr, err := services.StartStatisticsCron(services.NewStatisticsService(db), cfg.StatsCron, utils.Location())
		if err != nil {
			logger.Fatal("statistics cron", zap.Error(err))
		}
		defer cr.Stop()
	}

	r := routes.SetupRouter(routes.Deps{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Store:  store,
		Mailer: utils.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Server is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "server shutdown")
	}
}
