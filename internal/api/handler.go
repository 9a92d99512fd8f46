package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Freeeeeet/rental_booking/internal/model"
	"github.com/Freeeeeet/rental_booking/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClientService операции с клиентами для REST API
type ClientService interface {
	Register(ctx context.Context, in service.RegisterInput) (*model.Client, error)
	Login(ctx context.Context, email, password string) (*model.Client, error)
	CreateWithPlaceholder(ctx context.Context, firstName, lastName, phone string) (*model.Client, error)
	Search(ctx context.Context, phone string) (*model.Client, error)
	CheckDuplicates(ctx context.Context, phone string) ([]*model.ClientSummary, error)
	List(ctx context.Context) ([]*model.Client, error)
	Update(ctx context.Context, client *model.Client) (*model.Client, error)
	Delete(ctx context.Context, id int64) error
	ListBookings(ctx context.Context, clientID int64) ([]*model.BookingDetails, error)
}

// BookingService операции с бронированиями для REST API
type BookingService interface {
	Location() *time.Location
	Create(ctx context.Context, booking *model.Booking) error
	Get(ctx context.Context, id int64) (*model.BookingDetails, error)
	List(ctx context.Context, serviceFilter string) ([]*model.BookingDetails, error)
	Update(ctx context.Context, id int64, upd model.BookingUpdate) (*model.Booking, error)
	Delete(ctx context.Context, id int64) error
	AllByServiceDate(ctx context.Context) ([]model.ServiceDateCount, error)
	AvailabilityByDate(ctx context.Context, day time.Time) (map[string]model.Availability, error)
	CheckAvailability(ctx context.Context, serviceName string, day time.Time) (model.Availability, error)
}

// CommentService операции с отзывами для REST API
type CommentService interface {
	List(ctx context.Context) ([]*model.Comment, error)
	Create(ctx context.Context, in service.CreateCommentInput) (*model.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// Handler обработчики HTTP запросов сайта
type Handler struct {
	clients  ClientService
	bookings BookingService
	comments CommentService
	origins  []string
	logger   *zap.Logger
}

func NewHandler(
	clients ClientService,
	bookings BookingService,
	comments CommentService,
	origins []string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		clients:  clients,
		bookings: bookings,
		comments: comments,
		origins:  origins,
		logger:   logger,
	}
}

// internalError логирует ошибку и отвечает 500 с деталями
func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg,
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
}

// idParam разбирает :id; при ошибке отвечает 400
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}
