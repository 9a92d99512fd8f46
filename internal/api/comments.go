package api

import (
	"errors"
	"net/http"

	"github.com/Freeeeeet/rental_booking/internal/model"
	"github.com/Freeeeeet/rental_booking/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createCommentRequest struct {
	ClientID    *int64 `json:"client_id"`
	CommentText string `json:"comment_text"`
	AuthorName  string `json:"author_name"`
	Rating      *int   `json:"rating"`
}

type commentCreatedResponse struct {
	*model.Comment
	Message string `json:"message"`
}

// ListComments GET /comments
func (h *Handler) ListComments(c *gin.Context) {
	comments, err := h.comments.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list comments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if comments == nil {
		comments = []*model.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment POST /comments
func (h *Handler) CreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// нулевые значения означают, что поле не заполнено
	if req.Rating != nil && *req.Rating == 0 {
		req.Rating = nil
	}
	if req.ClientID != nil && *req.ClientID == 0 {
		req.ClientID = nil
	}

	comment, err := h.comments.Create(c.Request.Context(), service.CreateCommentInput{
		ClientID:   req.ClientID,
		AuthorName: req.AuthorName,
		Text:       req.CommentText,
		Rating:     req.Rating,
	})
	switch {
	case errors.Is(err, model.ErrEmptyComment):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Текст комментария обязателен"})
	case errors.Is(err, model.ErrInvalidRating):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Рейтинг должен быть от 1 до 5"})
	case errors.Is(err, model.ErrCommentExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Вы уже оставляли комментарий. Удалите старый чтобы добавить новый."})
	case err != nil:
		h.logger.Error("Failed to add comment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	default:
		c.JSON(http.StatusCreated, commentCreatedResponse{Comment: comment, Message: "Комментарий успешно добавлен!"})
	}
}

// DeleteComment DELETE /comments/:id
func (h *Handler) DeleteComment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	err := h.comments.Delete(c.Request.Context(), id)
	if errors.Is(err, model.ErrCommentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Комментарий не найден"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to delete comment", zap.Int64("comment_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.logger.Info("Comment deleted", zap.Int64("comment_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Комментарий удален", "deletedId": id})
}
