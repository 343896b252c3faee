package player

import (
	"github.com/crichq/pavilion/config"
	mw "github.com/crichq/pavilion/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PlayerRoutes sets up player CRUD routes. Reads are public, mutations
// require an admin account.
func PlayerRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewGormPlayerRepository(db)
	controller := NewPlayerController(repo)

	public := router.Group("/players")
	{
		public.GET("", controller.GetPlayers)
		public.GET("/:id", controller.GetPlayerByID)
	}

	protected := router.Group("/players")
	protected.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	protected.Use(mw.AdminMiddleware())
	{
		protected.POST("", controller.CreatePlayer)
		protected.PUT("/:id", controller.UpdatePlayer)
		protected.DELETE("/:id", controller.DeletePlayer)
	}
}
