package venue

import (
	"net/http"
	"strconv"

	"github.com/crichq/pavilion/internal/common"
	"github.com/crichq/pavilion/pkg/responses"
	"github.com/gin-gonic/gin"
)

type VenueController struct {
	repo VenueRepository
}

func NewVenueController(repo VenueRepository) *VenueController {
	return &VenueController{repo: repo}
}

// CreateVenue godoc
// @Summary Create a venue
// @Tags venues
// @Accept json
// @Produce json
// @Param request body CreateVenueRequest true "Venue payload"
// @Success 201 {object} Venue
// @Router /venues [post]
func (vc *VenueController) CreateVenue(c *gin.Context) {
	var req CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	v := Venue{
		Name:      req.Name,
		City:      req.City,
		Country:   req.Country,
		Capacity:  req.Capacity,
		PitchType: req.PitchType,
		Ends:      req.Ends,
	}
	if err := vc.repo.CreateVenue(&v); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to create venue: "+err.Error())
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Venue created successfully",
		"venue":   v,
	})
}

// GetVenues godoc
// @Summary List venues
// @Tags venues
// @Produce json
// @Param city query string false "Filter by city"
// @Success 200 {array} Venue
// @Router /venues [get]
func (vc *VenueController) GetVenues(c *gin.Context) {
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

	venues, total, err := vc.repo.GetVenues(filters, page, pageSize)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to list venues")
		return
	}

	responses.PaginatedResponse(c, http.StatusOK, venues, page, pageSize, total)
}

// GetVenueByID godoc
// @Summary Fetch a venue
// @Tags venues
// @Produce json
// @Param id path int true "Venue ID"
// @Success 200 {object} Venue
// @Router /venues/{id} [get]
func (vc *VenueController) GetVenueByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid venue ID")
		return
	}

	v, err := vc.repo.GetVenueByID(uint(id))
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch venue")
		return
	}
	if v == nil {
		common.RespondError(c, common.NewNotFound("venue", uint(id)))
		return
	}

	responses.SuccessResponse(c, http.StatusOK, v)
}

// UpdateVenue godoc
// @Summary Update a venue
// @Tags venues
// @Accept json
// @Produce json
// @Param id path int true "Venue ID"
// @Param request body UpdateVenueRequest true "Update payload"
// @Success 200 {object} Venue
// @Router /venues/{id} [put]
func (vc *VenueController) UpdateVenue(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid venue ID")
		return
	}

	var req UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	v, err := vc.repo.GetVenueByID(uint(id))
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch venue")
		return
	}
	if v == nil {
		common.RespondError(c, common.NewNotFound("venue", uint(id)))
		return
	}

	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.City != nil {
		v.City = *req.City
	}
	if req.Country != nil {
		v.Country = *req.Country
	}
	if req.Capacity != nil {
		v.Capacity = *req.Capacity
	}
	if req.PitchType != nil {
		v.PitchType = *req.PitchType
	}
	if req.Ends != nil {
		v.Ends = *req.Ends
	}

	if err := vc.repo.UpdateVenue(v); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to update venue")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Venue updated successfully",
		"venue":   v,
	})
}

// DeleteVenue godoc
// @Summary Soft-delete a venue
// @Tags venues
// @Param id path int true "Venue ID"
// @Success 200 {object} map[string]string
// @Router /venues/{id} [delete]
func (vc *VenueController) DeleteVenue(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid venue ID")
		return
	}

	v, err := vc.repo.GetVenueByID(uint(id))
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch venue")
		return
	}
	if v == nil {
		common.RespondError(c, common.NewNotFound("venue", uint(id)))
		return
	}

	if err := vc.repo.DeleteVenue(uint(id)); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete venue")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Venue deleted successfully"})
}
