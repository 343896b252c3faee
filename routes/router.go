package routes

import (
	"github.com/crichq/pavilion/config"
	"github.com/crichq/pavilion/internal/auth"
	"github.com/crichq/pavilion/internal/match"
	"github.com/crichq/pavilion/internal/player"
	"github.com/crichq/pavilion/internal/stats"
	"github.com/crichq/pavilion/internal/team"
	"github.com/crichq/pavilion/internal/tournament"
	"github.com/crichq/pavilion/internal/venue"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter builds the gin engine with every module's routes mounted
// under /api/v1.
func SetupRouter(db *gorm.DB, appConfig *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// Shared repositories for cross-module wiring.
	playerRepo := player.NewGormPlayerRepository(db)
	teamRepo := team.NewGormTeamRepository(db)
	teamService := team.NewTeamService(teamRepo, playerRepo)
	matchRepo := match.NewGormMatchRepository(db)

	auth.RegisterAuthRoutes(api, db, appConfig)
	player.PlayerRoutes(api, db, appConfig)
	team.TeamRoutes(api, db, appConfig, playerRepo)
	venue.VenueRoutes(api, db, appConfig)

	matchService := match.MatchRoutes(api, db, appConfig, teamRepo, teamService)
	tournament.TournamentRoutes(api, db, appConfig, teamRepo, matchRepo)
	statsService := stats.StatsRoutes(api, db, appConfig)

	// Career aggregation runs when a match completes.
	matchService.SetFinalizer(statsService)

	return router
}
