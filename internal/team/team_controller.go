package team

import (
	"net/http"
	"strconv"

	"github.com/crichq/pavilion/internal/common"
	"github.com/crichq/pavilion/pkg/responses"
	"github.com/gin-gonic/gin"
)

// TeamController handles team-related HTTP requests.
type TeamController struct {
	repo    TeamRepository
	service *TeamService
}

func NewTeamController(repo TeamRepository, service *TeamService) *TeamController {
	return &TeamController{repo: repo, service: service}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// CreateTeam godoc
// @Summary Create a team
// @Tags teams
// @Accept json
// @Produce json
// @Param request body CreateTeamRequest true "Team payload"
// @Success 201 {object} Team
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	t := Team{
		Name:      req.Name,
		ShortName: req.ShortName,
		City:      req.City,
		Logo:      req.Logo,
		OwnerName: req.OwnerName,
		Budget:    req.Budget,
	}
	if err := tc.repo.CreateTeam(&t); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to create team: "+err.Error())
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Team created successfully",
		"team":    t,
	})
}

// GetTeams godoc
// @Summary List teams
// @Tags teams
// @Produce json
// @Param city query string false "Filter by city"
// @Success 200 {array} Team
// @Router /teams [get]
func (tc *TeamController) GetTeams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	filters := make(map[string]interface{})
	if city := c.Query("city"); city != "" {
		filters["city = ?"] = city
	}

	teams, total, err := tc.repo.GetTeams(filters, page, pageSize)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to list teams")
		return
	}

	responses.PaginatedResponse(c, http.StatusOK, teams, page, pageSize, total)
}

// GetTeamByID godoc
// @Summary Fetch a team
// @Tags teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} Team
// @Router /teams/{id} [get]
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	t, err := tc.repo.GetTeamByID(id)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch team")
		return
	}
	if t == nil {
		common.RespondError(c, common.NewNotFound("team", id))
		return
	}

	responses.SuccessResponse(c, http.StatusOK, t)
}

// UpdateTeam godoc
// @Summary Update a team
// @Tags teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param request body UpdateTeamRequest true "Update payload"
// @Success 200 {object} Team
// @Router /teams/{id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	t, err := tc.repo.GetTeamByID(id)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch team")
		return
	}
	if t == nil {
		common.RespondError(c, common.NewNotFound("team", id))
		return
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.ShortName != nil {
		t.ShortName = *req.ShortName
	}
	if req.City != nil {
		t.City = *req.City
	}
	if req.Logo != nil {
		t.Logo = *req.Logo
	}
	if req.OwnerName != nil {
		t.OwnerName = *req.OwnerName
	}
	if req.Budget != nil {
		t.Budget = *req.Budget
	}

	if err := tc.repo.UpdateTeam(t); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to update team")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Team updated successfully",
		"team":    t,
	})
}

// DeleteTeam godoc
// @Summary Soft-delete a team
// @Tags teams
// @Param id path int true "Team ID"
// @Success 200 {object} map[string]string
// @Router /teams/{id} [delete]
func (tc *TeamController) DeleteTeam(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	t, err := tc.repo.GetTeamByID(id)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch team")
		return
	}
	if t == nil {
		common.RespondError(c, common.NewNotFound("team", id))
		return
	}

	if err := tc.repo.DeleteTeam(id); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete team")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Team deleted successfully"})
}

// SignPlayer godoc
// @Summary Sign a player to the team roster
// @Tags teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param request body SignPlayerRequest true "Contract payload"
// @Success 201 {object} Contract
// @Router /teams/{id}/contracts [post]
func (tc *TeamController) SignPlayer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SignPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	contract, err := tc.service.SignPlayer(id, req)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message":  "Player signed successfully",
		"contract": contract,
	})
}

// ReleasePlayer godoc
// @Summary Release a player from the roster
// @Tags teams
// @Param id path int true "Team ID"
// @Param playerId path int true "Player ID"
// @Success 200 {object} map[string]string
// @Router /teams/{id}/contracts/{playerId} [delete]
func (tc *TeamController) ReleasePlayer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	playerID, ok := parseIDParam(c, "playerId")
	if !ok {
		return
	}

	if err := tc.service.ReleasePlayer(id, playerID); err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Player released successfully"})
}

// GetRoster godoc
// @Summary List a team's active contracts
// @Tags teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {array} Contract
// @Router /teams/{id}/roster [get]
func (tc *TeamController) GetRoster(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	roster, err := tc.service.Roster(id)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{"roster": roster})
}

// SetCaptain godoc
// @Summary Assign the team captain
// @Tags teams
// @Accept json
// @Param id path int true "Team ID"
// @Param request body SetCaptainRequest true "Captain payload"
// @Success 200 {object} map[string]string
// @Router /teams/{id}/captain [post]
func (tc *TeamController) SetCaptain(c *gin.Context) {
	tc.setCaptain(c, false)
}

// SetViceCaptain godoc
// @Summary Assign the team vice-captain
// @Tags teams
// @Accept json
// @Param id path int true "Team ID"
// @Param request body SetCaptainRequest true "Vice-captain payload"
// @Success 200 {object} map[string]string
// @Router /teams/{id}/vice-captain [post]
func (tc *TeamController) SetViceCaptain(c *gin.Context) {
	tc.setCaptain(c, true)
}

func (tc *TeamController) setCaptain(c *gin.Context, vice bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetCaptainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	if err := tc.service.SetCaptain(id, req.PlayerID, vice); err != nil {
		common.RespondError(c, err)
		return
	}

	role := "Captain"
	if vice {
		role = "Vice-captain"
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": role + " assigned successfully"})
}
