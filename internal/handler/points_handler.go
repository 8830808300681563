package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/healthpoints/healthpoints-backend/internal/common"
	"github.com/healthpoints/healthpoints-backend/internal/domain"
	"github.com/healthpoints/healthpoints-backend/internal/middleware"
	"github.com/healthpoints/healthpoints-backend/internal/service"
)

// PointsHandler handles points HTTP requests
type PointsHandler struct {
	service *service.PointsService
}

// NewPointsHandler creates a new PointsHandler
func NewPointsHandler(service *service.PointsService) *PointsHandler {
	return &PointsHandler{service: service}
}

// callerFrom resolves the authenticated identity set by the JWT middleware
func callerFrom(c *gin.Context) service.Caller {
	return service.Caller{
		Login: middleware.GetLogin(c),
		Admin: middleware.IsAdmin(c),
	}
}

// Create handles POST /api/points
// @Summary Create a points record
// @Description Creates a daily points record. The record must not carry an id; a missing user defaults to the caller.
// @Tags points
// @Accept json
// @Produce json
// @Param request body domain.Points true "points record"
// @Success 201 {object} domain.Points
// @Failure 400 {object} common.ErrorInfo
// @Security BearerAuth
// @Router /points [post]
func (h *PointsHandler) Create(c *gin.Context) {
	var points domain.Points
	if err := c.ShouldBindJSON(&points); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.doCreate(c, &points)
}

// doCreate runs the create path; Update delegates here when the payload
// carries no id.
func (h *PointsHandler) doCreate(c *gin.Context, points *domain.Points) {
	result, err := h.service.Create(c.Request.Context(), callerFrom(c), points)
	if err != nil {
		if errors.Is(err, common.ErrIDAlreadySet) {
			common.SetFailure(c, "A new points record cannot already have an ID")
			common.ErrorResponse(c, http.StatusBadRequest, "A new points record cannot already have an ID", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to save points record", err)
		return
	}

	id := strconv.FormatUint(result.ID, 10)
	common.SetCreationAlert(c, "points", id)
	c.Header("Location", fmt.Sprintf("/api/points/%s", id))
	c.JSON(http.StatusCreated, result)
}

// Update handles PUT /api/points
// @Summary Update a points record
// @Description Upserts a points record. A payload without an id falls back to the create path.
// @Tags points
// @Accept json
// @Produce json
// @Param request body domain.Points true "points record"
// @Success 200 {object} domain.Points
// @Failure 400 {object} common.ErrorInfo
// @Security BearerAuth
// @Router /points [put]
func (h *PointsHandler) Update(c *gin.Context) {
	var points domain.Points
	if err := c.ShouldBindJSON(&points); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	// No id means the client wants an insert
	if points.ID == 0 {
		h.doCreate(c, &points)
		return
	}

	result, err := h.service.Update(c.Request.Context(), callerFrom(c), &points)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to save points record", err)
		return
	}

	common.SetUpdateAlert(c, "points", strconv.FormatUint(result.ID, 10))
	c.JSON(http.StatusOK, result)
}

// List handles GET /api/points
// @Summary List points records
// @Description Returns a page of records. Administrators see every record ordered by date descending; other callers see only their own.
// @Tags points
// @Produce json
// @Param page query int false "page number"
// @Param per_page query int false "page size"
// @Success 200 {array} domain.Points
// @Security BearerAuth
// @Router /points [get]
func (h *PointsHandler) List(c *gin.Context) {
	page, perPage := common.ParsePageParams(c)

	records, total, err := h.service.List(callerFrom(c), page, perPage)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list points records", err)
		return
	}

	common.SetPaginationHeaders(c, "/api/points", page, perPage, total)
	c.JSON(http.StatusOK, records)
}

// GetPointsThisWeek handles GET /api/points-this-week
// @Summary Weekly points summary
// @Description Sums the caller's points for the current Monday-start week.
// @Tags points
// @Produce json
// @Success 200 {object} domain.PointsThisWeek
// @Security BearerAuth
// @Router /points-this-week [get]
func (h *PointsHandler) GetPointsThisWeek(c *gin.Context) {
	result, err := h.service.PointsThisWeek(callerFrom(c))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to compute weekly summary", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/points/:id
// @Summary Get a points record
// @Tags points
// @Produce json
// @Param id path int true "points id"
// @Success 200 {object} domain.Points
// @Failure 404 "record not found"
// @Security BearerAuth
// @Router /points/{id} [get]
func (h *PointsHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid points ID", err)
		return
	}

	points, err := h.service.Get(id)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch points record", err)
		return
	}
	if points == nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, points)
}

// Delete handles DELETE /api/points/:id
// @Summary Delete a points record
// @Description Removes the record from the relational store and the search index. No existence check is performed.
// @Tags points
// @Param id path int true "points id"
// @Success 200 "deleted"
// @Security BearerAuth
// @Router /points/{id} [delete]
func (h *PointsHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid points ID", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete points record", err)
		return
	}

	common.SetDeletionAlert(c, "points", strconv.FormatUint(id, 10))
	c.Status(http.StatusOK)
}

// Search handles GET /api/_search/points/:query
// @Summary Search points records
// @Description Runs a free-text query against the search index and returns every match.
// @Tags points
// @Produce json
// @Param query path string true "free-text query"
// @Success 200 {array} domain.Points
// @Security BearerAuth
// @Router /_search/points/{query} [get]
func (h *PointsHandler) Search(c *gin.Context) {
	query := c.Param("query")

	records, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Search failed", err)
		return
	}

	if records == nil {
		records = []domain.Points{}
	}
	c.JSON(http.StatusOK, records)
}
