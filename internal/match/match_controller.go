package match

import (
	"net/http"
	"strconv"

	"github.com/crichq/pavilion/internal/common"
	"github.com/crichq/pavilion/pkg/responses"
	"github.com/gin-gonic/gin"
)

type MatchController struct {
	service *MatchService
	repo    MatchRepository
}

func NewMatchController(service *MatchService, repo MatchRepository) *MatchController {
	return &MatchController{service: service, repo: repo}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// CreateMatch godoc
// @Summary Schedule a match
// @Tags matches
// @Accept json
// @Produce json
// @Param request body CreateMatchRequest true "Match payload"
// @Success 201 {object} Match
// @Router /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	m, err := mc.service.CreateMatch(req)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Match scheduled successfully",
		"match":   m,
	})
}

// GetMatches godoc
// @Summary List matches
// @Tags matches
// @Produce json
// @Param status query string false "Filter by status"
// @Param team_id query int false "Filter by competing team"
// @Param tournament_id query int false "Filter by tournament"
// @Success 200 {array} Match
// @Router /matches [get]
func (mc *MatchController) GetMatches(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	filters := make(map[string]interface{})
	if status := c.Query("status"); status != "" {
		filters["status = ?"] = status
	}
	if teamID := c.Query("team_id"); teamID != "" {
		filters["(home_team_id = ? OR away_team_id = ?)"] = []interface{}{teamID, teamID}
	}
	if tournamentID := c.Query("tournament_id"); tournamentID != "" {
		filters["tournament_id = ?"] = tournamentID
	}

	matches, total, err := mc.repo.GetMatches(filters, page, pageSize)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to list matches")
		return
	}

	responses.PaginatedResponse(c, http.StatusOK, matches, page, pageSize, total)
}

// GetMatchByID godoc
// @Summary Fetch a match
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} Match
// @Router /matches/{id} [get]
func (mc *MatchController) GetMatchByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	m, err := mc.repo.GetMatchByID(id)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch match")
		return
	}
	if m == nil {
		common.RespondError(c, common.NewNotFound("match", id))
		return
	}

	responses.SuccessResponse(c, http.StatusOK, m)
}

// UpdateMatch godoc
// @Summary Amend a scheduled match
// @Tags matches
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body UpdateMatchRequest true "Update payload"
// @Success 200 {object} Match
// @Router /matches/{id} [put]
func (mc *MatchController) UpdateMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	m, err := mc.service.UpdateMatch(id, req)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Match updated successfully",
		"match":   m,
	})
}

// DeleteMatch godoc
// @Summary Delete a scheduled match
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} map[string]interface{}
// @Router /matches/{id} [delete]
func (mc *MatchController) DeleteMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := mc.service.DeleteMatch(id); err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Match deleted successfully",
	})
}

// RecordToss godoc
// @Summary Record the toss and open the first innings
// @Tags scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body RecordTossRequest true "Toss payload"
// @Success 200 {object} Match
// @Router /matches/{id}/toss [post]
func (mc *MatchController) RecordToss(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RecordTossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	m, err := mc.service.RecordToss(id, req)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Toss recorded, match is live",
		"match":   m,
	})
}

// StartInnings godoc
// @Summary Seat the openers for the current innings
// @Tags scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body StartInningsRequest true "Openers payload"
// @Success 200 {object} Innings
// @Router /matches/{id}/innings/start [post]
func (mc *MatchController) StartInnings(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req StartInningsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	inn, err := mc.service.StartInnings(id, req)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Innings underway",
		"innings": inn,
	})
}

// RecordDelivery godoc
// @Summary Record one delivery
// @Tags scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body RecordDeliveryRequest true "Delivery payload"
// @Success 201 {object} DeliveryResult
// @Router /matches/{id}/deliveries [post]
func (mc *MatchController) RecordDelivery(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RecordDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	result, err := mc.service.RecordDelivery(id, req)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, result)
}

// CompleteInnings godoc
// @Summary Close the current innings early
// @Tags scoring
// @Param id path int true "Match ID"
// @Success 200 {object} Match
// @Router /matches/{id}/innings/complete [post]
func (mc *MatchController) CompleteInnings(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	m, err := mc.service.CompleteInnings(id)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Innings closed",
		"match":   m,
	})
}

// AbandonMatch godoc
// @Summary Abandon a match
// @Tags scoring
// @Accept json
// @Param id path int true "Match ID"
// @Success 200 {object} Match
// @Router /matches/{id}/abandon [post]
func (mc *MatchController) AbandonMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason,omitempty"`
	}
	_ = c.ShouldBindJSON(&req)

	m, err := mc.service.AbandonMatch(id, req.Reason)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Match abandoned",
		"match":   m,
	})
}

// GetScorecard godoc
// @Summary Full scorecard for a match
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} Scorecard
// @Router /matches/{id}/scorecard [get]
func (mc *MatchController) GetScorecard(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	card, err := mc.service.GetScorecard(id)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, card)
}

// GetDeliveries godoc
// @Summary Ball-by-ball feed for an innings
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Param innings_id path int true "Innings ID"
// @Success 200 {array} BallDelivery
// @Router /matches/{id}/innings/{innings_id}/deliveries [get]
func (mc *MatchController) GetDeliveries(c *gin.Context) {
	if _, ok := parseIDParam(c, "id"); !ok {
		return
	}
	inningsID, ok := parseIDParam(c, "innings_id")
	if !ok {
		return
	}

	inn, err := mc.repo.GetInningsByID(inningsID)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch innings")
		return
	}
	if inn == nil {
		common.RespondError(c, common.NewNotFound("innings", inningsID))
		return
	}

	deliveries, err := mc.repo.GetDeliveriesForInnings(inningsID)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch deliveries")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, deliveries)
}
