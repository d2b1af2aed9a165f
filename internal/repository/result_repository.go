package repository

import (
	"context"

	"resumentor/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ResultRepository struct {
	Col *mongo.Collection
}

func NewResultRepository(db *mongo.Database) *ResultRepository {
	return &ResultRepository{Col: db.Collection("results")}
}

// Create appends a graded result. There is no dedup: two submissions for
// the same session produce two independent records.
func (r *ResultRepository) Create(ctx context.Context, result *models.QuizResult) error {
	res, err := r.Col.InsertOne(ctx, result)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		result.ID = oid.Hex()
	}
	return nil
}

// CreateIfAbsent inserts the result only if the session has no result
// yet. Deployments that need at-most-once grading can swap this in for
// Create; the reported bool is false when an earlier result won.
func (r *ResultRepository) CreateIfAbsent(ctx context.Context, result *models.QuizResult) (bool, error) {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"session_id": result.SessionID},
		bson.M{"$setOnInsert": result},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	if res.UpsertedID == nil {
		return false, nil
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		result.ID = oid.Hex()
	}
	return true, nil
}

// FindBySession returns every result recorded for a session, oldest first.
func (r *ResultRepository) FindBySession(ctx context.Context, sessionID string) ([]models.QuizResult, error) {
	cur, err := r.Col.Find(ctx, bson.M{"session_id": sessionID},
		options.Find().SetSort(bson.M{"completed_at": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var results []models.QuizResult
	for cur.Next(ctx) {
		var res models.QuizResult
		if err := cur.Decode(&res); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, cur.Err()
}

// FindByUser returns every result recorded for a user.
func (r *ResultRepository) FindByUser(ctx context.Context, userID string) ([]models.QuizResult, error) {
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var results []models.QuizResult
	for cur.Next(ctx) {
		var res models.QuizResult
		if err := cur.Decode(&res); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, cur.Err()
}
