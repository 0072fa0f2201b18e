package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/IbroIT/SU-back-back-sub001/utils"
)

// StartStatisticsCron rolls up yesterday's statistics on spec (standard five
// field cron syntax) in loc. Stop the returned cron on shutdown.
func StartStatisticsCron(svc *StatisticsService, spec string, loc *time.Location) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(spec, func() {
		yesterday := time.Now().In(loc).AddDate(0, 0, -1)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		stat, err := svc.Rollup(ctx, yesterday)
		if err != nil {
			utils.LogError(err, "nightly statistics rollup")
			return
		}
		if stat == nil {
			utils.Logger().Info("[STATS CRON] no published articles",
				zap.String("date", yesterday.Format(time.DateOnly)))
			return
		}
		utils.Logger().Info("[STATS CRON] rollup done",
			zap.String("date", yesterday.Format(time.DateOnly)),
			zap.Int64("articles", stat.TotalArticles))
	})
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_CRON %q: %w", spec, err)
	}
	c.Start()
	utils.Logger().Info("[STATS CRON] scheduler started", zap.String("spec", spec), zap.String("tz", loc.String()))
	return c, nil
}
