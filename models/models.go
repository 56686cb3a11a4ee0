package models

import "time"

type Topic struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type User struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type Article struct {
	ID            int64     `json:"article_id"`
	Author        string    `json:"author"`
	Title         string    `json:"title"`
	Body          string    `json:"body,omitempty"`
	Topic         string    `json:"topic"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int64     `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`

	// CommentCount is derived from the comments table at query time, it is
	// never stored on the articles row.
	CommentCount int64 `json:"comment_count"`
}

type Comment struct {
	ID        int64     `json:"comment_id"`
	Body      string    `json:"body"`
	ArticleID int64     `json:"article_id"`
	Author    string    `json:"author"`
	Votes     int64     `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}
