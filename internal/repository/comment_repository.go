package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/rental_booking/internal/model"
	"github.com/Freeeeeet/rental_booking/internal/repository/base"
)

type CommentRepository struct {
	*base.Repository
}

func NewCommentRepository(pool base.DB) *CommentRepository {
	return &CommentRepository{Repository: base.NewRepository(pool)}
}

// ListApproved возвращает одобренные комментарии, новые сначала
func (r *CommentRepository) ListApproved(ctx context.Context) ([]*model.Comment, error) {
	rows, err := r.Pool().Query(ctx, `
		SELECT id, client_id, author_name, comment_text, TO_CHAR(created_at, 'DD.MM.YYYY'), rating
		FROM comments
		WHERE is_approved = true
		ORDER BY comments.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.ClientID, &c.AuthorName, &c.CommentText, &c.CreatedAt, &c.Rating); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, &c)
	}

	return comments, rows.Err()
}

// ExistsForClient проверяет оставлял ли клиент комментарий
func (r *CommentRepository) ExistsForClient(ctx context.Context, clientID int64) (bool, error) {
	var exists bool
	err := r.Pool().QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM comments WHERE client_id = $1)`, clientID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check client comment: %w", err)
	}
	return exists, nil
}

// Create сохраняет одобренный комментарий
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	err := r.Pool().QueryRow(ctx, `
		INSERT INTO comments (client_id, author_name, comment_text, rating, is_approved)
		VALUES ($1, $2, $3, $4, true)
		RETURNING id, TO_CHAR(created_at, 'DD.MM.YYYY')
	`,
		comment.ClientID,
		comment.AuthorName,
		comment.CommentText,
		comment.Rating,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// Delete удаляет комментарий и возвращает количество удалённых строк
func (r *CommentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete comment: %w", err)
	}
	return affected, nil
}
