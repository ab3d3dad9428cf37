package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"Screams/internal/core/screams"
)

type postgresScreamRepo struct {
	db *sql.DB
}

// NewScreamRepository creates a new PostgreSQL scream repository
func NewScreamRepository(db *sql.DB) screams.Repository {
	return &postgresScreamRepo{db: db}
}

const screamColumns = `id, user_handle, user_image, body, created_at, like_count, comment_count`

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanScream(row rowScanner) (*screams.Scream, error) {
	var s screams.Scream
	err := row.Scan(
		&s.ID, &s.UserHandle, &s.UserImage, &s.Body,
		&s.CreatedAt, &s.LikeCount, &s.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List retrieves every scream, newest first
func (r *postgresScreamRepo) List(ctx context.Context) ([]*screams.Scream, error) {
	query := `SELECT ` + screamColumns + ` FROM screams ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list screams: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []*screams.Scream{}
	for rows.Next() {
		s, err := scanScream(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scream: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating screams: %w", err)
	}

	return result, nil
}

// Create inserts a new scream
func (r *postgresScreamRepo) Create(ctx context.Context, scream *screams.Scream) error {
	query := `
		INSERT INTO screams (
			id, user_handle, user_image, body,
			created_at, like_count, comment_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(
		ctx, query,
		scream.ID, scream.UserHandle, scream.UserImage, scream.Body,
		scream.CreatedAt, scream.LikeCount, scream.CommentCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert scream: %w", err)
	}

	return nil
}

// GetByID retrieves a scream by ID
func (r *postgresScreamRepo) GetByID(ctx context.Context, id string) (*screams.Scream, error) {
	query := `SELECT ` + screamColumns + ` FROM screams WHERE id = $1`

	s, err := scanScream(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, screams.ErrScreamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scream by ID: %w", err)
	}

	return s, nil
}

// ListComments retrieves all comments on a scream, newest first
func (r *postgresScreamRepo) ListComments(ctx context.Context, screamID string) ([]*screams.Comment, error) {
	query := `
		SELECT id, scream_id, user_handle, user_image, body, created_at
		FROM comments
		WHERE scream_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, screamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []*screams.Comment{}
	for rows.Next() {
		var c screams.Comment
		if err := rows.Scan(&c.ID, &c.ScreamID, &c.UserHandle, &c.UserImage, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return result, nil
}

// CreateComment bumps comment_count and inserts the comment in one transaction
func (r *postgresScreamRepo) CreateComment(ctx context.Context, comment *screams.Comment) (*screams.Scream, error) {
	var updated *screams.Scream

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		// The UPDATE takes the row lock, so concurrent comments serialize here
		s, err := scanScream(tx.QueryRowContext(ctx, `
			UPDATE screams
			SET comment_count = comment_count + 1
			WHERE id = $1
			RETURNING `+screamColumns,
			comment.ScreamID,
		))
		if err == sql.ErrNoRows {
			return screams.ErrScreamNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to update comment count: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO comments (id, scream_id, user_handle, user_image, body, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			comment.ID, comment.ScreamID, comment.UserHandle, comment.UserImage,
			comment.Body, comment.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert comment: %w", err)
		}

		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// CreateLike inserts the like and bumps like_count in one transaction
// The (scream_id, user_handle) unique constraint makes duplicate likes impossible
func (r *postgresScreamRepo) CreateLike(ctx context.Context, like *screams.Like) (*screams.Scream, error) {
	var updated *screams.Scream

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := lockScream(ctx, tx, like.ScreamID); err != nil {
			return err
		}

		var likeID string
		err := tx.QueryRowContext(ctx, `
			INSERT INTO likes (id, scream_id, user_handle, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (scream_id, user_handle) DO NOTHING
			RETURNING id`,
			like.ID, like.ScreamID, like.UserHandle, like.CreatedAt,
		).Scan(&likeID)
		if err == sql.ErrNoRows {
			return screams.ErrAlreadyLiked
		}
		if err != nil {
			return fmt.Errorf("failed to insert like: %w", err)
		}

		s, err := scanScream(tx.QueryRowContext(ctx, `
			UPDATE screams
			SET like_count = like_count + 1
			WHERE id = $1
			RETURNING `+screamColumns,
			like.ScreamID,
		))
		if err != nil {
			return fmt.Errorf("failed to update like count: %w", err)
		}

		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteLike removes the like and decrements like_count in one transaction
func (r *postgresScreamRepo) DeleteLike(ctx context.Context, screamID, handle string) (*screams.Scream, error) {
	var updated *screams.Scream

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := lockScream(ctx, tx, screamID); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			`DELETE FROM likes WHERE scream_id = $1 AND user_handle = $2`,
			screamID, handle,
		)
		if err != nil {
			return fmt.Errorf("failed to delete like: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check delete result: %w", err)
		}
		if rowsAffected == 0 {
			return screams.ErrNotLiked
		}

		s, err := scanScream(tx.QueryRowContext(ctx, `
			UPDATE screams
			SET like_count = GREATEST(0, like_count - 1)
			WHERE id = $1
			RETURNING `+screamColumns,
			screamID,
		))
		if err != nil {
			return fmt.Errorf("failed to update like count: %w", err)
		}

		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes the scream, its likes and its comments in one transaction
func (r *postgresScreamRepo) Delete(ctx context.Context, id string) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if err := lockScream(ctx, tx, id); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE scream_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete likes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE scream_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM screams WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete scream: %w", err)
		}

		return nil
	})
}

// lockScream takes a row lock on the scream for the rest of the transaction
func lockScream(ctx context.Context, tx *sql.Tx, id string) error {
	var locked string
	err := tx.QueryRowContext(ctx, `SELECT id FROM screams WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err == sql.ErrNoRows {
		return screams.ErrScreamNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock scream: %w", err)
	}
	return nil
}

// withTx runs fn inside a transaction, committing on nil and rolling back otherwise
func (r *postgresScreamRepo) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && rollbackErr != sql.ErrTxDone {
			slog.Error("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
