package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"realty-crm-backend/internal/middleware"
	"realty-crm-backend/internal/models"
	"realty-crm-backend/internal/services"
	"realty-crm-backend/internal/supabase"
)

type PropertiesHandler struct {
	dbClient     *supabase.DatabaseClient
	mediaService *services.MediaService
}

func NewPropertiesHandler(dbClient *supabase.DatabaseClient, mediaService *services.MediaService) *PropertiesHandler {
	return &PropertiesHandler{
		dbClient:     dbClient,
		mediaService: mediaService,
	}
}

// CreateProperty godoc
// @Summary     Create a property
// @Description Creates a property record owned by the authenticated agent
// @Tags        properties
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       property body models.CreatePropertyRequest true "Property"
// @Success     200 {object} models.PropertyResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /properties [post]
func (h *PropertiesHandler) CreateProperty(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	var req models.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	property, err := h.dbClient.CreateProperty(userID, req.Title, req.Address, req.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create property",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, toPropertyResponse(property))
}

// ListProperties godoc
// @Summary     List properties
// @Tags        properties
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.PropertyListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /properties [get]
func (h *PropertiesHandler) ListProperties(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	properties, err := h.dbClient.ListProperties(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list properties",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.PropertyResponse, len(properties))
	for i := range properties {
		responses[i] = toPropertyResponse(&properties[i])
	}

	c.JSON(http.StatusOK, models.PropertyListResponse{Properties: responses})
}

// GetProperty godoc
// @Summary     Get a property
// @Tags        properties
// @Produce     json
// @Security    Bearer
// @Param       property_id path string true "Property ID (UUID)"
// @Success     200 {object} models.PropertyResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /properties/{property_id} [get]
func (h *PropertiesHandler) GetProperty(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	propertyID, err := uuid.Parse(c.Param("property_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid property id"})
		return
	}

	property, err := h.dbClient.GetProperty(propertyID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "property not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, toPropertyResponse(property))
}

// DeleteProperty godoc
// @Summary     Delete a property
// @Description Deletes a property together with its media rows and storage objects. Storage cleanup is best-effort.
// @Tags        properties
// @Produce     json
// @Security    Bearer
// @Param       property_id path string true "Property ID (UUID)"
// @Success     200 {object} map[string]string
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /properties/{property_id} [delete]
func (h *PropertiesHandler) DeleteProperty(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	propertyID, err := uuid.Parse(c.Param("property_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid property id"})
		return
	}

	if _, err := h.dbClient.GetProperty(propertyID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "property not found",
			Message: err.Error(),
		})
		return
	}

	// Media rows and storage objects first: the FK has no database cascade
	if err := h.mediaService.DeleteAllForProperty(propertyID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete property media",
			Message: err.Error(),
		})
		return
	}

	if err := h.dbClient.DeleteProperty(propertyID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete property",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "property deleted successfully"})
}

func toPropertyResponse(p *models.Property) models.PropertyResponse {
	response := models.PropertyResponse{
		ID:        p.ID.String(),
		Title:     p.Title,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Address.Valid {
		response.Address = p.Address.String
	}
	return response
}
