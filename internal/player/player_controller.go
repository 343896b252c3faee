package player

import (
	"net/http"
	"strconv"

	"github.com/crichq/pavilion/internal/common"
	"github.com/crichq/pavilion/pkg/responses"
	"github.com/gin-gonic/gin"
)

// PlayerController handles player-related HTTP requests.
type PlayerController struct {
	repo PlayerRepository
}

func NewPlayerController(repo PlayerRepository) *PlayerController {
	return &PlayerController{repo: repo}
}

// CreatePlayer godoc
// @Summary Register a new player
// @Tags players
// @Accept json
// @Produce json
// @Param request body CreatePlayerRequest true "Player payload"
// @Success 201 {object} Player
// @Router /players [post]
func (pc *PlayerController) CreatePlayer(c *gin.Context) {
	var req CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	p := Player{
		Name:         req.Name,
		Nationality:  req.Nationality,
		DateOfBirth:  req.DateOfBirth,
		BattingStyle: req.BattingStyle,
		BowlingStyle: req.BowlingStyle,
	}
	p.ApplyRole(Role(req.Role))

	if err := pc.repo.CreatePlayer(&p); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to create player: "+err.Error())
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Player created successfully",
		"player":  p,
	})
}

// GetPlayers godoc
// @Summary List players with optional role/nationality filters
// @Tags players
// @Produce json
// @Param role query string false "Filter by role"
// @Param nationality query string false "Filter by nationality"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {array} Player
// @Router /players [get]
func (pc *PlayerController) GetPlayers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	filters := make(map[string]interface{})
	if nationality := c.Query("nationality"); nationality != "" {
		filters["nationality = ?"] = nationality
	}
	switch Role(c.Query("role")) {
	case RoleBatsman:
		filters["can_bat = ? AND can_bowl = ? AND keeps_wicket = ?"] = []interface{}{true, false, false}
	case RoleBowler:
		filters["can_bowl = ? AND keeps_wicket = ?"] = []interface{}{true, false}
	case RoleAllRounder:
		filters["can_bat = ? AND can_bowl = ?"] = []interface{}{true, true}
	case RoleWicketkeeper:
		filters["keeps_wicket = ?"] = true
	}

	players, total, err := pc.repo.GetPlayers(filters, page, pageSize)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to list players")
		return
	}

	responses.PaginatedResponse(c, http.StatusOK, players, page, pageSize, total)
}

// GetPlayerByID godoc
// @Summary Fetch a player with career figures
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} Player
// @Router /players/{id} [get]
func (pc *PlayerController) GetPlayerByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid player ID")
		return
	}

	p, err := pc.repo.GetPlayerByID(uint(id))
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch player")
		return
	}
	if p == nil {
		common.RespondError(c, common.NewNotFound("player", uint(id)))
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"player": p,
		"role":   p.RoleLabel(),
	})
}

// UpdatePlayer godoc
// @Summary Update player identity or role
// @Tags players
// @Accept json
// @Produce json
// @Param id path int true "Player ID"
// @Param request body UpdatePlayerRequest true "Update payload"
// @Success 200 {object} Player
// @Router /players/{id} [put]
func (pc *PlayerController) UpdatePlayer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid player ID")
		return
	}

	var req UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	p, err := pc.repo.GetPlayerByID(uint(id))
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch player")
		return
	}
	if p == nil {
		common.RespondError(c, common.NewNotFound("player", uint(id)))
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Nationality != nil {
		p.Nationality = *req.Nationality
	}
	if req.DateOfBirth != nil {
		p.DateOfBirth = req.DateOfBirth
	}
	if req.BattingStyle != nil {
		p.BattingStyle = *req.BattingStyle
	}
	if req.BowlingStyle != nil {
		p.BowlingStyle = *req.BowlingStyle
	}
	if req.Role != nil {
		p.ApplyRole(Role(*req.Role))
	}

	if err := pc.repo.UpdatePlayer(p); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to update player")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Player updated successfully",
		"player":  p,
	})
}

// DeletePlayer godoc
// @Summary Soft-delete a player
// @Tags players
// @Param id path int true "Player ID"
// @Success 200 {object} map[string]string
// @Router /players/{id} [delete]
func (pc *PlayerController) DeletePlayer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid player ID")
		return
	}

	p, err := pc.repo.GetPlayerByID(uint(id))
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch player")
		return
	}
	if p == nil {
		common.RespondError(c, common.NewNotFound("player", uint(id)))
		return
	}

	if err := pc.repo.DeletePlayer(uint(id)); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete player")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Player deleted successfully"})
}
