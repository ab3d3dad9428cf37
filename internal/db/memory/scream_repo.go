// Package memory provides an in-process screams.Repository.
//
// A single mutex guards all three collections, so every multi-step write
// (counter + counted record) is atomic with respect to other callers.
package memory

import (
	"context"
	"sort"
	"sync"

	"Screams/internal/core/screams"
)

type likeKey struct {
	screamID string
	handle   string
}

type memoryScreamRepo struct {
	screams  map[string]*screams.Scream
	comments map[string][]*screams.Comment // keyed by scream ID
	likes    map[likeKey]*screams.Like
	seq      map[string]uint64 // insertion order, breaks created_at ties
	next     uint64
	mu       sync.RWMutex
}

// NewScreamRepository creates an empty in-memory scream repository
func NewScreamRepository() screams.Repository {
	return &memoryScreamRepo{
		screams:  make(map[string]*screams.Scream),
		comments: make(map[string][]*screams.Comment),
		likes:    make(map[likeKey]*screams.Like),
		seq:      make(map[string]uint64),
	}
}

func (r *memoryScreamRepo) List(ctx context.Context) ([]*screams.Scream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*screams.Scream, 0, len(r.screams))
	for _, s := range r.screams {
		result = append(result, copyScream(s))
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return r.seq[a.ID] > r.seq[b.ID]
	})
	return result, nil
}

func (r *memoryScreamRepo) Create(ctx context.Context, scream *screams.Scream) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	r.screams[scream.ID] = copyScream(scream)
	r.seq[scream.ID] = r.next
	return nil
}

func (r *memoryScreamRepo) GetByID(ctx context.Context, id string) (*screams.Scream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.screams[id]
	if !ok {
		return nil, screams.ErrScreamNotFound
	}
	return copyScream(s), nil
}

func (r *memoryScreamRepo) ListComments(ctx context.Context, screamID string) ([]*screams.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.comments[screamID]
	result := make([]*screams.Comment, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		cp := *stored[i]
		result = append(result, &cp)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memoryScreamRepo) CreateComment(ctx context.Context, comment *screams.Comment) (*screams.Scream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.screams[comment.ScreamID]
	if !ok {
		return nil, screams.ErrScreamNotFound
	}

	cp := *comment
	r.comments[comment.ScreamID] = append(r.comments[comment.ScreamID], &cp)
	s.CommentCount++
	return copyScream(s), nil
}

func (r *memoryScreamRepo) CreateLike(ctx context.Context, like *screams.Like) (*screams.Scream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.screams[like.ScreamID]
	if !ok {
		return nil, screams.ErrScreamNotFound
	}

	key := likeKey{screamID: like.ScreamID, handle: like.UserHandle}
	if _, exists := r.likes[key]; exists {
		return nil, screams.ErrAlreadyLiked
	}

	cp := *like
	r.likes[key] = &cp
	s.LikeCount++
	return copyScream(s), nil
}

func (r *memoryScreamRepo) DeleteLike(ctx context.Context, screamID, handle string) (*screams.Scream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.screams[screamID]
	if !ok {
		return nil, screams.ErrScreamNotFound
	}

	key := likeKey{screamID: screamID, handle: handle}
	if _, exists := r.likes[key]; !exists {
		return nil, screams.ErrNotLiked
	}

	delete(r.likes, key)
	if s.LikeCount > 0 {
		s.LikeCount--
	}
	return copyScream(s), nil
}

func (r *memoryScreamRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.screams[id]; !ok {
		return screams.ErrScreamNotFound
	}

	for key := range r.likes {
		if key.screamID == id {
			delete(r.likes, key)
		}
	}
	delete(r.comments, id)
	delete(r.screams, id)
	delete(r.seq, id)
	return nil
}

func copyScream(s *screams.Scream) *screams.Scream {
	cp := *s
	return &cp
}
