package screams

import "context"

// Service defines the business logic interface for screams
// Each operation is stateless: validate -> read -> (conditionally) write -> respond
type Service interface {
	// ListScreams returns every scream, newest first
	ListScreams(ctx context.Context) ([]*Scream, error)

	// CreateScream posts a new scream with zeroed counters
	CreateScream(ctx context.Context, author Author, req CreateScreamRequest) (*Scream, error)

	// GetScream returns a scream with all of its comments, newest first
	GetScream(ctx context.Context, screamID string) (*ScreamView, error)

	// CommentOnScream adds a comment and bumps the scream's comment count in one step
	CommentOnScream(ctx context.Context, author Author, screamID string, req CreateCommentRequest) (*Comment, error)

	// LikeScream records a like and returns the updated scream
	// Returns ErrAlreadyLiked if the author already likes it
	LikeScream(ctx context.Context, author Author, screamID string) (*Scream, error)

	// UnlikeScream removes a like and returns the updated scream
	// Returns ErrNotLiked if there is nothing to remove
	UnlikeScream(ctx context.Context, author Author, screamID string) (*Scream, error)

	// DeleteScream removes a scream together with its likes and comments
	// Only the scream's author may delete it
	DeleteScream(ctx context.Context, author Author, screamID string) error
}

// Repository defines the data access interface for screams, comments and likes
//
// Operations that touch a counter and its counted collection are atomic: the
// implementation either applies both writes or neither.
type Repository interface {
	// List retrieves all screams ordered by created_at descending
	List(ctx context.Context) ([]*Scream, error)

	// Create inserts a new scream
	Create(ctx context.Context, scream *Scream) error

	// GetByID retrieves a scream by ID
	// Returns ErrScreamNotFound if it doesn't exist
	GetByID(ctx context.Context, id string) (*Scream, error)

	// ListComments retrieves all comments on a scream ordered by created_at descending
	ListComments(ctx context.Context, screamID string) ([]*Comment, error)

	// CreateComment increments comment_count and inserts the comment
	// Returns the updated scream, or ErrScreamNotFound
	CreateComment(ctx context.Context, comment *Comment) (*Scream, error)

	// CreateLike inserts the like and increments like_count
	// Returns ErrScreamNotFound or ErrAlreadyLiked
	CreateLike(ctx context.Context, like *Like) (*Scream, error)

	// DeleteLike removes the (screamID, handle) like and decrements like_count
	// Returns ErrScreamNotFound or ErrNotLiked
	DeleteLike(ctx context.Context, screamID, handle string) (*Scream, error)

	// Delete removes the scream and every like and comment referencing it
	// Returns ErrScreamNotFound if it doesn't exist
	Delete(ctx context.Context, id string) error
}
