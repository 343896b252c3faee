package tournament

import (
	"net/http"
	"strconv"

	"github.com/crichq/pavilion/internal/common"
	"github.com/crichq/pavilion/pkg/responses"
	"github.com/gin-gonic/gin"
)

type TournamentController struct {
	service *TournamentService
	repo    TournamentRepository
}

func NewTournamentController(service *TournamentService, repo TournamentRepository) *TournamentController {
	return &TournamentController{service: service, repo: repo}
}

// CreateTournament godoc
// @Summary Create a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param request body CreateTournamentRequest true "Tournament payload"
// @Success 201 {object} Tournament
// @Router /tournaments [post]
func (tc *TournamentController) CreateTournament(c *gin.Context) {
	var req CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	t, err := tc.service.CreateTournament(req)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message":    "Tournament created successfully",
		"tournament": t,
	})
}

// GetTournaments godoc
// @Summary List tournaments
// @Tags tournaments
// @Produce json
// @Param status query string false "Filter by status"
// @Param format query string false "Filter by format"
// @Success 200 {array} Tournament
// @Router /tournaments [get]
func (tc *TournamentController) GetTournaments(c *gin.Context) {
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
	if format := c.Query("format"); format != "" {
		filters["format = ?"] = format
	}

	tournaments, total, err := tc.repo.GetTournaments(filters, page, pageSize)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to list tournaments")
		return
	}

	responses.PaginatedResponse(c, http.StatusOK, tournaments, page, pageSize, total)
}

// GetTournamentByID godoc
// @Summary Fetch a tournament with its entered teams
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} Tournament
// @Router /tournaments/{id} [get]
func (tc *TournamentController) GetTournamentByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid tournament ID")
		return
	}

	t, err := tc.repo.GetTournamentByID(uint(id))
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch tournament")
		return
	}
	if t == nil {
		common.RespondError(c, common.NewNotFound("tournament", uint(id)))
		return
	}

	responses.SuccessResponse(c, http.StatusOK, t)
}

// UpdateTournament godoc
// @Summary Update a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param id path int true "Tournament ID"
// @Param request body UpdateTournamentRequest true "Update payload"
// @Success 200 {object} Tournament
// @Router /tournaments/{id} [put]
func (tc *TournamentController) UpdateTournament(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid tournament ID")
		return
	}

	var req UpdateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	t, err := tc.service.UpdateTournament(uint(id), req)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message":    "Tournament updated successfully",
		"tournament": t,
	})
}

// AddTeam godoc
// @Summary Enter a team into a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param id path int true "Tournament ID"
// @Param request body AddTeamRequest true "Team entry payload"
// @Success 201 {object} TournamentTeam
// @Router /tournaments/{id}/teams [post]
func (tc *TournamentController) AddTeam(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid tournament ID")
		return
	}

	var req AddTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	entry, err := tc.service.AddTeam(uint(id), req)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Team entered successfully",
		"entry":   entry,
	})
}

// RemoveTeam godoc
// @Summary Withdraw a team from a tournament
// @Tags tournaments
// @Param id path int true "Tournament ID"
// @Param team_id path int true "Team ID"
// @Success 200 {object} map[string]string
// @Router /tournaments/{id}/teams/{team_id} [delete]
func (tc *TournamentController) RemoveTeam(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid tournament ID")
		return
	}
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid team ID")
		return
	}

	if err := tc.service.RemoveTeam(uint(id), uint(teamID)); err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Team withdrawn successfully"})
}

// GenerateFixtures godoc
// @Summary Generate the round-robin fixture list
// @Tags tournaments
// @Accept json
// @Produce json
// @Param id path int true "Tournament ID"
// @Param request body GenerateFixturesRequest false "Scheduling options"
// @Success 201 {array} match.Match
// @Router /tournaments/{id}/fixtures [post]
func (tc *TournamentController) GenerateFixtures(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid tournament ID")
		return
	}

	var req GenerateFixturesRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		responses.ValidationErrorResponse(c, err)
		return
	}

	matches, err := tc.service.GenerateFixtures(uint(id), req)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message":  "Fixtures generated successfully",
		"fixtures": matches,
	})
}

// GetFixtures godoc
// @Summary List a tournament's fixtures
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {array} match.Match
// @Router /tournaments/{id}/fixtures [get]
func (tc *TournamentController) GetFixtures(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid tournament ID")
		return
	}

	matches, err := tc.service.GetFixtures(uint(id))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, matches)
}
