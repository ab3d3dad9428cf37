// Package mongo stores screams, comments and likes in MongoDB collections.
//
// Multi-document writes run inside session transactions, so the deployment
// must be a replica set or sharded cluster.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"Screams/internal/core/screams"
)

const (
	screamsCollection  = "screams"
	commentsCollection = "comments"
	likesCollection    = "likes"

	uniqueLikeIndex = "unique_like_scream_handle"
)

type mongoScreamRepo struct {
	db *mongo.Database
}

// Connect opens a client for uri and verifies the primary is reachable
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client, nil
}

// NewScreamRepository creates a new MongoDB scream repository
func NewScreamRepository(db *mongo.Database) screams.Repository {
	return &mongoScreamRepo{db: db}
}

// EnsureIndexes creates the indexes the repository relies on
// The unique likes index is what rules out duplicate likes
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(likesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "scream_id", Value: 1}, {Key: "user_handle", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(uniqueLikeIndex),
	})
	if err != nil {
		return fmt.Errorf("failed to create likes index: %w", err)
	}

	_, err = db.Collection(commentsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "scream_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create comments index: %w", err)
	}

	_, err = db.Collection(screamsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create screams index: %w", err)
	}

	return nil
}

func (r *mongoScreamRepo) List(ctx context.Context) ([]*screams.Scream, error) {
	cursor, err := r.db.Collection(screamsCollection).Find(
		ctx,
		bson.D{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list screams: %w", err)
	}

	result := []*screams.Scream{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode screams: %w", err)
	}
	return result, nil
}

func (r *mongoScreamRepo) Create(ctx context.Context, scream *screams.Scream) error {
	if _, err := r.db.Collection(screamsCollection).InsertOne(ctx, scream); err != nil {
		return fmt.Errorf("failed to insert scream: %w", err)
	}
	return nil
}

func (r *mongoScreamRepo) GetByID(ctx context.Context, id string) (*screams.Scream, error) {
	return findScream(ctx, r.db, id)
}

func (r *mongoScreamRepo) ListComments(ctx context.Context, screamID string) ([]*screams.Comment, error) {
	cursor, err := r.db.Collection(commentsCollection).Find(
		ctx,
		bson.D{{Key: "scream_id", Value: screamID}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	result := []*screams.Comment{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return result, nil
}

func (r *mongoScreamRepo) CreateComment(ctx context.Context, comment *screams.Comment) (*screams.Scream, error) {
	var updated *screams.Scream

	err := r.executeTransaction(ctx, func(sc mongo.SessionContext) error {
		s, err := incrementCounter(sc, r.db, comment.ScreamID, "comment_count", 1)
		if err != nil {
			return err
		}

		if _, err := r.db.Collection(commentsCollection).InsertOne(sc, comment); err != nil {
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

func (r *mongoScreamRepo) CreateLike(ctx context.Context, like *screams.Like) (*screams.Scream, error) {
	var updated *screams.Scream

	err := r.executeTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := findScream(sc, r.db, like.ScreamID); err != nil {
			return err
		}

		if _, err := r.db.Collection(likesCollection).InsertOne(sc, like); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return screams.ErrAlreadyLiked
			}
			return fmt.Errorf("failed to insert like: %w", err)
		}

		s, err := incrementCounter(sc, r.db, like.ScreamID, "like_count", 1)
		if err != nil {
			return err
		}

		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *mongoScreamRepo) DeleteLike(ctx context.Context, screamID, handle string) (*screams.Scream, error) {
	var updated *screams.Scream

	err := r.executeTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := findScream(sc, r.db, screamID); err != nil {
			return err
		}

		result, err := r.db.Collection(likesCollection).DeleteOne(
			sc,
			bson.D{{Key: "scream_id", Value: screamID}, {Key: "user_handle", Value: handle}},
		)
		if err != nil {
			return fmt.Errorf("failed to delete like: %w", err)
		}
		if result.DeletedCount == 0 {
			return screams.ErrNotLiked
		}

		// Clamp at zero: like_count = max(0, like_count - 1)
		decrement := mongo.Pipeline{
			{{Key: "$set", Value: bson.D{{Key: "like_count", Value: bson.D{
				{Key: "$max", Value: bson.A{0, bson.D{{Key: "$subtract", Value: bson.A{"$like_count", 1}}}}},
			}}}}},
		}

		var s screams.Scream
		err = r.db.Collection(screamsCollection).FindOneAndUpdate(
			sc,
			bson.D{{Key: "_id", Value: screamID}},
			decrement,
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&s)
		if err != nil {
			return fmt.Errorf("failed to update like count: %w", err)
		}

		updated = &s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *mongoScreamRepo) Delete(ctx context.Context, id string) error {
	return r.executeTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := findScream(sc, r.db, id); err != nil {
			return err
		}

		filter := bson.D{{Key: "scream_id", Value: id}}
		if _, err := r.db.Collection(likesCollection).DeleteMany(sc, filter); err != nil {
			return fmt.Errorf("failed to delete likes: %w", err)
		}
		if _, err := r.db.Collection(commentsCollection).DeleteMany(sc, filter); err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		if _, err := r.db.Collection(screamsCollection).DeleteOne(sc, bson.D{{Key: "_id", Value: id}}); err != nil {
			return fmt.Errorf("failed to delete scream: %w", err)
		}
		return nil
	})
}

func findScream(ctx context.Context, db *mongo.Database, id string) (*screams.Scream, error) {
	var s screams.Scream
	err := db.Collection(screamsCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, screams.ErrScreamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scream by ID: %w", err)
	}
	return &s, nil
}

func incrementCounter(ctx context.Context, db *mongo.Database, id, field string, delta int) (*screams.Scream, error) {
	var s screams.Scream
	err := db.Collection(screamsCollection).FindOneAndUpdate(
		ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: field, Value: delta}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, screams.ErrScreamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", field, err)
	}
	return &s, nil
}

// executeTransaction runs operation in a majority-acknowledged transaction
// The driver retries the callback on transient transaction errors
func (r *mongoScreamRepo) executeTransaction(ctx context.Context, operation func(sc mongo.SessionContext) error) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	txnOptions := options.Transaction().SetWriteConcern(writeconcern.Majority())
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, operation(sc)
	}, txnOptions)
	if err != nil && !screams.IsNotFound(err) && !screams.IsConflict(err) {
		slog.Warn("mongo transaction failed", "error", err)
	}
	return err
}
