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

type ClientsHandler struct {
	dbClient        *supabase.DatabaseClient
	documentService *services.DocumentService
}

func NewClientsHandler(dbClient *supabase.DatabaseClient, documentService *services.DocumentService) *ClientsHandler {
	return &ClientsHandler{
		dbClient:        dbClient,
		documentService: documentService,
	}
}

// CreateClient godoc
// @Summary     Create a client
// @Tags        clients
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       client body models.CreateClientRequest true "Client"
// @Success     200 {object} models.ClientResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /clients [post]
func (h *ClientsHandler) CreateClient(c *gin.Context) {
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

	var req models.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	client, err := h.dbClient.CreateClient(userID, req.FullName, req.Email, req.Phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create client",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, toClientResponse(client))
}

// ListClients godoc
// @Summary     List clients
// @Tags        clients
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ClientListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /clients [get]
func (h *ClientsHandler) ListClients(c *gin.Context) {
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

	clients, err := h.dbClient.ListClients(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list clients",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.ClientResponse, len(clients))
	for i := range clients {
		responses[i] = toClientResponse(&clients[i])
	}

	c.JSON(http.StatusOK, models.ClientListResponse{Clients: responses})
}

// GetClient godoc
// @Summary     Get a client
// @Tags        clients
// @Produce     json
// @Security    Bearer
// @Param       client_id path string true "Client ID (UUID)"
// @Success     200 {object} models.ClientResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /clients/{client_id} [get]
func (h *ClientsHandler) GetClient(c *gin.Context) {
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

	clientID, err := uuid.Parse(c.Param("client_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid client id"})
		return
	}

	client, err := h.dbClient.GetClient(clientID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "client not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, toClientResponse(client))
}

// DeleteClient godoc
// @Summary     Delete a client
// @Description Deletes a client together with its document rows and storage objects. Storage cleanup is best-effort.
// @Tags        clients
// @Produce     json
// @Security    Bearer
// @Param       client_id path string true "Client ID (UUID)"
// @Success     200 {object} map[string]string
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /clients/{client_id} [delete]
func (h *ClientsHandler) DeleteClient(c *gin.Context) {
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

	clientID, err := uuid.Parse(c.Param("client_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid client id"})
		return
	}

	if _, err := h.dbClient.GetClient(clientID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "client not found",
			Message: err.Error(),
		})
		return
	}

	// Document rows and storage objects first: the FK has no database cascade
	if err := h.documentService.DeleteAllForClient(clientID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete client documents",
			Message: err.Error(),
		})
		return
	}

	if err := h.dbClient.DeleteClient(clientID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete client",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "client deleted successfully"})
}

func toClientResponse(client *models.Client) models.ClientResponse {
	response := models.ClientResponse{
		ID:        client.ID.String(),
		FullName:  client.FullName,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
	if client.Email.Valid {
		response.Email = client.Email.String
	}
	if client.Phone.Valid {
		response.Phone = client.Phone.String
	}
	return response
}
