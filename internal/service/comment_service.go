package service

import (
	"context"
	"strings"

	"github.com/Freeeeeet/rental_booking/internal/model"
	"go.uber.org/zap"
)

const anonymousAuthor = "Аноним"

type CreateCommentInput struct {
	ClientID   *int64
	AuthorName string
	Text       string
	Rating     *int
}

type CommentService struct {
	comments CommentStore
	logger   *zap.Logger
}

func NewCommentService(comments CommentStore, logger *zap.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		logger:   logger,
	}
}

// List одобренные отзывы
func (s *CommentService) List(ctx context.Context) ([]*model.Comment, error) {
	return s.comments.ListApproved(ctx)
}

// Create добавляет отзыв; один клиент может оставить только один отзыв
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*model.Comment, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, model.ErrEmptyComment
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return nil, model.ErrInvalidRating
	}

	if in.ClientID != nil {
		exists, err := s.comments.ExistsForClient(ctx, *in.ClientID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, model.ErrCommentExists
		}
	}

	author := strings.TrimSpace(in.AuthorName)
	if author == "" {
		author = anonymousAuthor
	}

	comment := &model.Comment{
		ClientID:    in.ClientID,
		AuthorName:  author,
		CommentText: text,
		Rating:      in.Rating,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("Comment added", zap.Int64("comment_id", comment.ID))
	return comment, nil
}

// Delete удаляет отзыв
func (s *CommentService) Delete(ctx context.Context, id int64) error {
	affected, err := s.comments.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}
