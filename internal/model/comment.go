package model

type Comment struct {
	ID          int64  `json:"id"`
	ClientID    *int64 `json:"client_id"`
	AuthorName  string `json:"author_name"`
	CommentText string `json:"comment_text"`
	CreatedAt   string `json:"created_at"` // ДД.ММ.ГГГГ, форматируется в запросе
	Rating      *int   `json:"rating"`
}
