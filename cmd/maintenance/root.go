package main

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/config"
	"github.com/IbroIT/SU-back-back-sub001/database"
	"github.com/IbroIT/SU-back-back-sub001/services"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

// env is what every sub-command gets after setup.
type env struct {
	cfg *config.Config
	db  *gorm.DB
}

var rootCmd = &cobra.Command{
	Use:          "maintenance",
	Short:        "Repair jobs for the university site database",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(resyncCmd, rollupCmd, translateTagsCmd, cleanupCmd, purgeStockCmd)
}

// setup loads config, starts logging and opens the database.
func setup() (*env, error) {
	cfg := config.LoadConfig()
	if err := utils.InitLogger(cfg.LogDir, cfg.LogLevel); err != nil {
		return nil, err
	}
	utils.SetLocation(cfg.Timezone)
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &env{cfg: cfg, db: db}, nil
}

// translator uses the redis-cached translation API. Redis is optional here:
// without it every call goes to the API.
func (e *env) translator(ctx context.Context) services.Translator {
	var rdb *redis.Client
	if c, err := database.ConnectRedis(ctx, e.cfg); err != nil {
		utils.LogError(err, "translation cache disabled")
	} else {
		rdb = c
	}
	return utils.NewTranslationService(e.cfg.TranslateAPIURL, rdb)
}

func runWith(fn func(ctx context.Context, cmd *cobra.Command, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		return fn(cmd.Context(), cmd, e)
	}
}
