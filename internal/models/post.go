package models

import (
	"time"
)

// Post is an AI-generated article owned by the user that requested it.
// Posts are created only through the generation flow and never updated.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID"`
	CreatedAt time.Time `json:"created_at"`
}

// GeneratePostRequest defines the request body for requesting a generated article
type GeneratePostRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type GeneratePostResponse struct {
	Message string `json:"message"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

// PostView is the public listing shape of a post
type PostView struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	AuthorID  uint      `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
