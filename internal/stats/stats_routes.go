package stats

import (
	"github.com/crichq/pavilion/config"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StatsRoutes sets up the read-only statistics routes and returns the
// service so the router can hand it to the match module as its finalizer.
func StatsRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) *StatsService {
	repo := NewGormStatsRepository(db)
	service := NewStatsService(repo, appConfig)
	controller := NewStatsController(service)

	public := router.Group("/stats")
	{
		public.GET("/players/:id", controller.GetPlayerCareer)
		public.GET("/teams/:id", controller.GetTeamSummary)
		public.GET("/tournaments/:id/points-table", controller.GetPointsTable)
		public.GET("/matches/:id/phases", controller.GetMatchPhases)
		public.GET("/innings/:innings_id/partnerships", controller.GetPartnerships)
		public.GET("/innings/:innings_id/manhattan", controller.GetManhattan)
		public.GET("/innings/:innings_id/worm", controller.GetWorm)
		public.GET("/innings/:innings_id/wagon-wheel", controller.GetWagonWheel)
		public.GET("/innings/:innings_id/pitch-map", controller.GetPitchMap)
	}

	return service
}
