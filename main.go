package main

import (
	"github.com/crichq/pavilion/config"
	"github.com/crichq/pavilion/internal/auth"
	"github.com/crichq/pavilion/internal/match"
	"github.com/crichq/pavilion/internal/player"
	"github.com/crichq/pavilion/internal/team"
	"github.com/crichq/pavilion/internal/tournament"
	"github.com/crichq/pavilion/internal/venue"
	"github.com/crichq/pavilion/routes"
)

// @title Pavilion API
// @version 1.0
// @description Cricket league management: teams, contracts, tournaments and ball-by-ball scoring.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		config.Log.WithError(err).Fatal("initialization failed")
	}

	appConfig := config.GetConfig()
	db := config.DB

	err := db.AutoMigrate(
		&auth.Account{},
		&auth.RefreshToken{},
		&player.Player{},
		&team.Team{},
		&team.Contract{},
		&venue.Venue{},
		&tournament.Tournament{},
		&tournament.TournamentTeam{},
		&match.Match{},
		&match.Innings{},
		&match.BallDelivery{},
		&match.FallOfWicket{},
		&match.BattingEntry{},
		&match.BowlingFigures{},
	)
	if err != nil {
		config.Log.WithError(err).Fatal("database migration failed")
	}

	router := routes.SetupRouter(db, appConfig)

	config.Log.WithField("port", appConfig.App.Port).Info("starting server")
	if err := router.Run(":" + appConfig.App.Port); err != nil {
		config.Log.WithError(err).Fatal("server exited")
	}
}
