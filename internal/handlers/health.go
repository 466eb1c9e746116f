package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"realty-crm-backend/internal/models"
)

// HealthHandler godoc
// @Summary     Liveness check
// @Description Reports whether the media backend is up. Unauthenticated; does not touch storage or the database.
// @Tags        health
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Router      /health [get]
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "ok",
		Service: "realty-crm-backend",
	})
}
