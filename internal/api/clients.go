package api

import (
	"errors"
	"net/http"

	"github.com/Freeeeeet/rental_booking/internal/model"
	"github.com/Freeeeeet/rental_booking/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerRequest struct {
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name" binding:"required"`
	Email       string  `json:"email" binding:"required"`
	PhoneNumber string  `json:"phone_number"`
	Address     *string `json:"address"`
	Password    string  `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type findOrCreateRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

type updateClientRequest struct {
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email" binding:"required"`
	PhoneNumber string  `json:"phone_number"`
	Address     *string `json:"address"`
}

// ListClients GET /clients
func (h *Handler) ListClients(c *gin.Context) {
	clients, err := h.clients.List(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to list clients", err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// RegisterClient POST /clients
func (h *Handler) RegisterClient(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: first_name, last_name, email, password"})
		return
	}

	client, err := h.clients.Register(c.Request.Context(), service.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Password:    req.Password,
	})
	if errors.Is(err, model.ErrDuplicateEmail) {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists."})
		return
	}
	if err != nil {
		h.internalError(c, "Failed to register client", err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

// SearchClient GET /clients/search?phone=
func (h *Handler) SearchClient(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	client, err := h.clients.Search(c.Request.Context(), phone)
	if errors.Is(err, model.ErrClientNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Failed to search client", err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// Login POST /login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required."})
		return
	}

	client, err := h.clients.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, model.ErrInvalidCredentials) {
		h.logger.Warn("Failed login attempt", zap.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	}
	if err != nil {
		h.internalError(c, "Failed to login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "client": client})
}

// FindOrCreateClient POST /find-or-create-client.
// Всегда создаёт нового клиента с временными учётными данными.
func (h *Handler) FindOrCreateClient(c *gin.Context) {
	var req findOrCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Имя и телефон обязательны"})
		return
	}

	client, err := h.clients.CreateWithPlaceholder(c.Request.Context(), req.FirstName, req.LastName, req.PhoneNumber)
	if err != nil {
		h.logger.Error("Failed to create client", zap.String("phone", req.PhoneNumber), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сервера", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client_id": client.ID,
		"is_new":    true,
		"message":   "Создан новый клиент",
	})
}

// UpdateClient PUT /clients/:id
func (h *Handler) UpdateClient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: first_name, email"})
		return
	}

	client, err := h.clients.Update(c.Request.Context(), &model.Client{
		ID:          id,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	switch {
	case errors.Is(err, model.ErrClientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
	case errors.Is(err, model.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists for another client."})
	case err != nil:
		h.internalError(c, "Failed to update client", err)
	default:
		c.JSON(http.StatusOK, client)
	}
}

// DeleteClient DELETE /clients/:id
func (h *Handler) DeleteClient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	err := h.clients.Delete(c.Request.Context(), id)
	switch {
	case errors.Is(err, model.ErrClientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
	case errors.Is(err, model.ErrClientHasBookings):
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete client with existing bookings."})
	case err != nil:
		h.internalError(c, "Failed to delete client", err)
	default:
		c.Status(http.StatusNoContent)
	}
}

// ClientBookings GET /clients/:id/bookings
func (h *Handler) ClientBookings(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	bookings, err := h.clients.ListBookings(c.Request.Context(), id)
	if errors.Is(err, model.ErrClientNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Failed to list client bookings", err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// CheckDuplicateClient GET /check-duplicate-client?phone=
func (h *Handler) CheckDuplicateClient(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}

	clients, err := h.clients.CheckDuplicates(c.Request.Context(), phone)
	if err != nil {
		h.internalError(c, "Failed to check duplicate client", err)
		return
	}
	if clients == nil {
		clients = []*model.ClientSummary{}
	}

	c.JSON(http.StatusOK, gin.H{
		"exists":  len(clients) > 0,
		"clients": clients,
		"count":   len(clients),
	})
}
