package team

import (
	"github.com/crichq/pavilion/config"
	mw "github.com/crichq/pavilion/internal/middleware"
	"github.com/crichq/pavilion/internal/player"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TeamRoutes sets up team and contract routes.
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, playerRepo player.PlayerRepository) {
	repo := NewGormTeamRepository(db)
	service := NewTeamService(repo, playerRepo)
	controller := NewTeamController(repo, service)

	public := router.Group("/teams")
	{
		public.GET("", controller.GetTeams)
		public.GET("/:id", controller.GetTeamByID)
		public.GET("/:id/roster", controller.GetRoster)
	}

	protected := router.Group("/teams")
	protected.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	protected.Use(mw.AdminMiddleware())
	{
		protected.POST("", controller.CreateTeam)
		protected.PUT("/:id", controller.UpdateTeam)
		protected.DELETE("/:id", controller.DeleteTeam)
		protected.POST("/:id/contracts", controller.SignPlayer)
		protected.DELETE("/:id/contracts/:playerId", controller.ReleasePlayer)
		protected.POST("/:id/captain", controller.SetCaptain)
		protected.POST("/:id/vice-captain", controller.SetViceCaptain)
	}
}
