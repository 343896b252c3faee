package match

import (
	"github.com/crichq/pavilion/config"
	mw "github.com/crichq/pavilion/internal/middleware"
	"github.com/crichq/pavilion/internal/team"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MatchRoutes sets up match lifecycle and scoring routes. It returns the
// service so the router can attach the stats finalizer after the stats
// module is built.
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, teamRepo team.TeamRepository, roster ContractChecker) *MatchService {
	repo := NewGormMatchRepository(db)
	service := NewMatchService(repo, teamRepo, roster, appConfig)
	controller := NewMatchController(service, repo)

	public := router.Group("/matches")
	{
		public.GET("", controller.GetMatches)
		public.GET("/:id", controller.GetMatchByID)
		public.GET("/:id/scorecard", controller.GetScorecard)
		public.GET("/:id/innings/:innings_id/deliveries", controller.GetDeliveries)
	}

	admin := router.Group("/matches")
	admin.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	admin.Use(mw.AdminMiddleware())
	{
		admin.POST("", controller.CreateMatch)
		admin.PUT("/:id", controller.UpdateMatch)
		admin.DELETE("/:id", controller.DeleteMatch)
	}

	scoring := router.Group("/matches")
	scoring.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	scoring.Use(mw.ScorerMiddleware())
	{
		scoring.POST("/:id/toss", controller.RecordToss)
		scoring.POST("/:id/innings/start", controller.StartInnings)
		scoring.POST("/:id/innings/complete", controller.CompleteInnings)
		scoring.POST("/:id/deliveries", controller.RecordDelivery)
		scoring.POST("/:id/abandon", controller.AbandonMatch)
	}

	return service
}
