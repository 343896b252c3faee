package tournament

import (
	"github.com/crichq/pavilion/config"
	"github.com/crichq/pavilion/internal/match"
	mw "github.com/crichq/pavilion/internal/middleware"
	"github.com/crichq/pavilion/internal/team"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TournamentRoutes sets up tournament and fixture routes.
func TournamentRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, teamRepo team.TeamRepository, matchRepo match.MatchRepository) {
	repo := NewGormTournamentRepository(db)
	service := NewTournamentService(repo, teamRepo, matchRepo)
	controller := NewTournamentController(service, repo)

	public := router.Group("/tournaments")
	{
		public.GET("", controller.GetTournaments)
		public.GET("/:id", controller.GetTournamentByID)
		public.GET("/:id/fixtures", controller.GetFixtures)
	}

	protected := router.Group("/tournaments")
	protected.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	protected.Use(mw.AdminMiddleware())
	{
		protected.POST("", controller.CreateTournament)
		protected.PUT("/:id", controller.UpdateTournament)
		protected.POST("/:id/teams", controller.AddTeam)
		protected.DELETE("/:id/teams/:team_id", controller.RemoveTeam)
		protected.POST("/:id/fixtures", controller.GenerateFixtures)
	}
}
