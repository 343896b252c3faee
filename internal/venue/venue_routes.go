package venue

import (
	"github.com/crichq/pavilion/config"
	mw "github.com/crichq/pavilion/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// VenueRoutes sets up venue CRUD routes.
func VenueRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewGormVenueRepository(db)
	controller := NewVenueController(repo)

	public := router.Group("/venues")
	{
		public.GET("", controller.GetVenues)
		public.GET("/:id", controller.GetVenueByID)
	}

	protected := router.Group("/venues")
	protected.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	protected.Use(mw.AdminMiddleware())
	{
		protected.POST("", controller.CreateVenue)
		protected.PUT("/:id", controller.UpdateVenue)
		protected.DELETE("/:id", controller.DeleteVenue)
	}
}
