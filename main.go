package main

import (
	"time"

	"github.com/daypulse/daypulse/checkin"
	"github.com/daypulse/daypulse/config"
	"github.com/daypulse/daypulse/models"
	"github.com/daypulse/daypulse/routes"
	"github.com/daypulse/daypulse/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.CheckIn{})

	// The check-in timezone decides what "today" means for streaks.
	loc := time.Local
	if cfg.CheckinTimezone != "" {
		l, err := time.LoadLocation(cfg.CheckinTimezone)
		if err != nil {
			utils.Sugar.Fatalf("invalid CheckinTimezone %q: %v", cfg.CheckinTimezone, err)
		}
		loc = l
	}

	svc := checkin.NewService(checkin.NewGormStore(db), loc)
	r := routes.SetupRouter(db, svc)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
