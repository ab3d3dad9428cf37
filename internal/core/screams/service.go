package screams

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"

	"Screams/internal/monitoring"
)

const (
	// maxBodyGraphemes caps scream and comment bodies
	maxBodyGraphemes = 10000

	deletedMessage = "Scream deleted successfully"
)

type screamService struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewService creates a new scream service instance
func NewService(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &screamService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// DeletedResponse is the acknowledgement returned after DeleteScream succeeds
func DeletedResponse() DeleteScreamResponse {
	return DeleteScreamResponse{Message: deletedMessage}
}

func (s *screamService) ListScreams(ctx context.Context) ([]*Scream, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list screams", "error", err)
		return nil, fmt.Errorf("failed to list screams: %w", err)
	}
	if result == nil {
		result = []*Scream{}
	}
	return result, nil
}

func (s *screamService) CreateScream(ctx context.Context, author Author, req CreateScreamRequest) (*Scream, error) {
	if err := validateAuthor(author); err != nil {
		return nil, err
	}
	if uniseg.GraphemeClusterCount(req.Body) > maxBodyGraphemes {
		return nil, NewValidationError("body", fmt.Sprintf("must be at most %d characters", maxBodyGraphemes))
	}

	scream := &Scream{
		ID:         s.newID(),
		UserHandle: author.Handle,
		UserImage:  author.ImageURL,
		Body:       req.Body,
		CreatedAt:  s.now(),
	}

	if err := s.repo.Create(ctx, scream); err != nil {
		s.logger.Error("failed to create scream",
			"error", err,
			"handle", author.Handle)
		return nil, fmt.Errorf("failed to create scream: %w", err)
	}

	monitoring.RecordInteraction(monitoring.InteractionCreated)
	s.logger.Info("scream created",
		"scream", scream.ID,
		"handle", author.Handle)

	return scream, nil
}

func (s *screamService) GetScream(ctx context.Context, screamID string) (*ScreamView, error) {
	if err := validateScreamID(screamID); err != nil {
		return nil, err
	}

	scream, err := s.repo.GetByID(ctx, screamID)
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to get scream", "error", err, "scream", screamID)
		return nil, fmt.Errorf("failed to get scream: %w", err)
	}

	comments, err := s.repo.ListComments(ctx, screamID)
	if err != nil {
		s.logger.Error("failed to list comments", "error", err, "scream", screamID)
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	if comments == nil {
		comments = []*Comment{}
	}

	return &ScreamView{Scream: scream, Comments: comments}, nil
}

func (s *screamService) CommentOnScream(ctx context.Context, author Author, screamID string, req CreateCommentRequest) (*Comment, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, NewValidationError("comment", "must not be empty")
	}
	if uniseg.GraphemeClusterCount(req.Body) > maxBodyGraphemes {
		return nil, NewValidationError("comment", fmt.Sprintf("must be at most %d characters", maxBodyGraphemes))
	}
	if err := validateAuthor(author); err != nil {
		return nil, err
	}
	if err := validateScreamID(screamID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:         s.newID(),
		ScreamID:   screamID,
		UserHandle: author.Handle,
		UserImage:  author.ImageURL,
		Body:       req.Body,
		CreatedAt:  s.now(),
	}

	if _, err := s.repo.CreateComment(ctx, comment); err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to create comment",
			"error", err,
			"scream", screamID,
			"handle", author.Handle)
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	monitoring.RecordInteraction(monitoring.InteractionCommented)
	return comment, nil
}

func (s *screamService) LikeScream(ctx context.Context, author Author, screamID string) (*Scream, error) {
	if err := validateAuthor(author); err != nil {
		return nil, err
	}
	if err := validateScreamID(screamID); err != nil {
		return nil, err
	}

	like := &Like{
		ID:         s.newID(),
		ScreamID:   screamID,
		UserHandle: author.Handle,
		CreatedAt:  s.now(),
	}

	scream, err := s.repo.CreateLike(ctx, like)
	if err != nil {
		if IsNotFound(err) || IsConflict(err) {
			return nil, err
		}
		s.logger.Error("failed to like scream",
			"error", err,
			"scream", screamID,
			"handle", author.Handle)
		return nil, fmt.Errorf("failed to like scream: %w", err)
	}

	monitoring.RecordInteraction(monitoring.InteractionLiked)
	return scream, nil
}

func (s *screamService) UnlikeScream(ctx context.Context, author Author, screamID string) (*Scream, error) {
	if err := validateAuthor(author); err != nil {
		return nil, err
	}
	if err := validateScreamID(screamID); err != nil {
		return nil, err
	}

	scream, err := s.repo.DeleteLike(ctx, screamID, author.Handle)
	if err != nil {
		if IsNotFound(err) || IsConflict(err) {
			return nil, err
		}
		s.logger.Error("failed to unlike scream",
			"error", err,
			"scream", screamID,
			"handle", author.Handle)
		return nil, fmt.Errorf("failed to unlike scream: %w", err)
	}

	monitoring.RecordInteraction(monitoring.InteractionUnliked)
	return scream, nil
}

func (s *screamService) DeleteScream(ctx context.Context, author Author, screamID string) error {
	if err := validateAuthor(author); err != nil {
		return err
	}
	if err := validateScreamID(screamID); err != nil {
		return err
	}

	scream, err := s.repo.GetByID(ctx, screamID)
	if err != nil {
		if IsNotFound(err) {
			return err
		}
		s.logger.Error("failed to get scream for delete", "error", err, "scream", screamID)
		return fmt.Errorf("failed to get scream: %w", err)
	}

	if scream.UserHandle != author.Handle {
		s.logger.Warn("delete rejected: caller is not the author",
			"scream", screamID,
			"handle", author.Handle,
			"author", scream.UserHandle)
		return ErrNotAuthorized
	}

	if err := s.repo.Delete(ctx, screamID); err != nil {
		if IsNotFound(err) {
			return err
		}
		s.logger.Error("failed to delete scream", "error", err, "scream", screamID)
		return fmt.Errorf("failed to delete scream: %w", err)
	}

	monitoring.RecordInteraction(monitoring.InteractionDeleted)
	s.logger.Info("scream deleted", "scream", screamID, "handle", author.Handle)
	return nil
}

func validateAuthor(author Author) error {
	if strings.TrimSpace(author.Handle) == "" {
		return NewValidationError("userHandle", "caller handle is required")
	}
	return nil
}

func validateScreamID(id string) error {
	if strings.TrimSpace(id) == "" {
		return NewValidationError("screamId", "scream ID is required")
	}
	return nil
}
