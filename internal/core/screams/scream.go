package screams

import (
	"time"
)

// Scream is a short text post with aggregate like and comment counters
type Scream struct {
	CreatedAt    time.Time `json:"createdAt" db:"created_at" bson:"created_at"`
	ID           string    `json:"screamId" db:"id" bson:"_id"`
	UserHandle   string    `json:"userHandle" db:"user_handle" bson:"user_handle"`
	UserImage    string    `json:"userImage" db:"user_image" bson:"user_image"`
	Body         string    `json:"body" db:"body" bson:"body"`
	LikeCount    int       `json:"likeCount" db:"like_count" bson:"like_count"`
	CommentCount int       `json:"commentCount" db:"comment_count" bson:"comment_count"`
}

// Comment is a reply attached to a scream
// Comments are never edited; they go away only when their scream is deleted
type Comment struct {
	CreatedAt  time.Time `json:"createdAt" db:"created_at" bson:"created_at"`
	ID         string    `json:"commentId" db:"id" bson:"_id"`
	ScreamID   string    `json:"screamId" db:"scream_id" bson:"scream_id"`
	UserHandle string    `json:"userHandle" db:"user_handle" bson:"user_handle"`
	UserImage  string    `json:"userImage" db:"user_image" bson:"user_image"`
	Body       string    `json:"body" db:"body" bson:"body"`
}

// Like records that a handle liked a scream
// At most one Like exists per (ScreamID, UserHandle); stores enforce this with a unique key
type Like struct {
	CreatedAt  time.Time `json:"createdAt" db:"created_at" bson:"created_at"`
	ID         string    `json:"likeId" db:"id" bson:"_id"`
	ScreamID   string    `json:"screamId" db:"scream_id" bson:"scream_id"`
	UserHandle string    `json:"userHandle" db:"user_handle" bson:"user_handle"`
}

// ScreamView is a scream with its full comment list embedded (newest first)
type ScreamView struct {
	*Scream
	Comments []*Comment `json:"comments"`
}

// Author identifies the caller performing a write
// Populated by the auth middleware and trusted as-is
type Author struct {
	Handle   string
	ImageURL string
}

// CreateScreamRequest is the input for posting a new scream
type CreateScreamRequest struct {
	Body string `json:"body"`
}

// CreateCommentRequest is the input for commenting on a scream
type CreateCommentRequest struct {
	Body string `json:"body"`
}

// DeleteScreamResponse acknowledges a successful delete
type DeleteScreamResponse struct {
	Message string `json:"message"`
}
