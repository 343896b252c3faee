package stats

import (
	"net/http"
	"strconv"

	"github.com/crichq/pavilion/internal/common"
	"github.com/crichq/pavilion/pkg/responses"
	"github.com/gin-gonic/gin"
)

type StatsController struct {
	service *StatsService
}

func NewStatsController(service *StatsService) *StatsController {
	return &StatsController{service: service}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryID(c *gin.Context, name string) uint {
	id, _ := strconv.ParseUint(c.Query(name), 10, 32)
	return uint(id)
}

// GetPlayerCareer godoc
// @Summary Career statistics for a player
// @Tags stats
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} PlayerCareer
// @Router /stats/players/{id} [get]
func (sc *StatsController) GetPlayerCareer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	career, err := sc.service.GetPlayerCareer(id)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, career)
}

// GetTeamSummary godoc
// @Summary Record and recent form for a team
// @Tags stats
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} TeamSummary
// @Router /stats/teams/{id} [get]
func (sc *StatsController) GetTeamSummary(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	summary, err := sc.service.GetTeamSummary(id)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, summary)
}

// GetPointsTable godoc
// @Summary Tournament standings with net run rate
// @Tags stats
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {array} PointsRow
// @Router /stats/tournaments/{id}/points-table [get]
func (sc *StatsController) GetPointsTable(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	table, err := sc.service.GetPointsTable(id)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, table)
}

// GetMatchPhases godoc
// @Summary Powerplay, middle and death breakdown per innings
// @Tags stats
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {array} InningsPhases
// @Router /stats/matches/{id}/phases [get]
func (sc *StatsController) GetMatchPhases(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	phases, err := sc.service.GetMatchPhases(id)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, phases)
}

// GetPartnerships godoc
// @Summary Partnership walk for an innings
// @Tags stats
// @Produce json
// @Param innings_id path int true "Innings ID"
// @Success 200 {array} Partnership
// @Router /stats/innings/{innings_id}/partnerships [get]
func (sc *StatsController) GetPartnerships(c *gin.Context) {
	id, ok := pathID(c, "innings_id")
	if !ok {
		return
	}

	partnerships, err := sc.service.GetPartnerships(id)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, partnerships)
}

// GetManhattan godoc
// @Summary Per-over runs and wickets for an innings
// @Tags stats
// @Produce json
// @Param innings_id path int true "Innings ID"
// @Success 200 {array} OverSummary
// @Router /stats/innings/{innings_id}/manhattan [get]
func (sc *StatsController) GetManhattan(c *gin.Context) {
	id, ok := pathID(c, "innings_id")
	if !ok {
		return
	}

	overs, err := sc.service.GetManhattan(id)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, overs)
}

// GetWorm godoc
// @Summary Cumulative score line for an innings
// @Tags stats
// @Produce json
// @Param innings_id path int true "Innings ID"
// @Success 200 {array} WormPoint
// @Router /stats/innings/{innings_id}/worm [get]
func (sc *StatsController) GetWorm(c *gin.Context) {
	id, ok := pathID(c, "innings_id")
	if !ok {
		return
	}

	points, err := sc.service.GetWorm(id)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, points)
}

// GetWagonWheel godoc
// @Summary Shot chart for an innings
// @Tags stats
// @Produce json
// @Param innings_id path int true "Innings ID"
// @Param batter_id query int false "Filter by batter"
// @Param bowler_id query int false "Filter by bowler"
// @Param min_runs query int false "Minimum runs off the bat"
// @Success 200 {array} WagonWheelShot
// @Router /stats/innings/{innings_id}/wagon-wheel [get]
func (sc *StatsController) GetWagonWheel(c *gin.Context) {
	id, ok := pathID(c, "innings_id")
	if !ok {
		return
	}

	minRuns, _ := strconv.Atoi(c.Query("min_runs"))
	filter := WagonWheelFilter{
		BatterID: queryID(c, "batter_id"),
		BowlerID: queryID(c, "bowler_id"),
		MinRuns:  minRuns,
	}

	shots, err := sc.service.GetWagonWheel(id, filter)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, shots)
}

// GetPitchMap godoc
// @Summary Landing-zone chart for an innings
// @Tags stats
// @Produce json
// @Param innings_id path int true "Innings ID"
// @Param bowler_id query int false "Filter by bowler"
// @Success 200 {array} PitchMapBall
// @Router /stats/innings/{innings_id}/pitch-map [get]
func (sc *StatsController) GetPitchMap(c *gin.Context) {
	id, ok := pathID(c, "innings_id")
	if !ok {
		return
	}

	balls, err := sc.service.GetPitchMap(id, queryID(c, "bowler_id"))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, balls)
}
