package repository

import (
	"context"
	"errors"
	"time"

	"resumentor/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrSessionNotFound covers both sessions that never existed and sessions
// past their TTL. Callers cannot tell the two apart.
var ErrSessionNotFound = errors.New("quiz session not found")

type SessionRepository struct {
	Col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{Col: db.Collection("sessions")}
}

// Create persists a new write-once session and stamps its lifetime.
// The stored questions include the answer key; it never leaves the server.
func (r *SessionRepository) Create(ctx context.Context, session *models.QuizSession) error {
	now := time.Now().UTC()
	session.CreatedAt = now
	session.ExpiresAt = now.Add(models.SessionTTL)

	res, err := r.Col.InsertOne(ctx, session)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		session.ID = oid.Hex()
	}
	return nil
}

// FindByID loads a live session. The expires_at check here is the real
// TTL contract: Mongo's expiry monitor purges lazily, so a record can
// still be present after its deadline.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.QuizSession, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	var session models.QuizSession
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if session.Expired(time.Now().UTC()) {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}
