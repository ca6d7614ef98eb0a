package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/noah-isme/election-result-api/internal/models"
)

// ElectionResultRepository handles persistence for election results in MongoDB.
// Missing documents surface as mongo.ErrNoDocuments.
type ElectionResultRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewElectionResultRepository creates a new repository instance. A zero timeout leaves
// deadlines to the caller's context.
func NewElectionResultRepository(coll *mongo.Collection, timeout time.Duration) *ElectionResultRepository {
	return &ElectionResultRepository{coll: coll, timeout: timeout}
}

func (r *ElectionResultRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// Find returns every document matching the equality filter in natural order.
func (r *ElectionResultRepository) Find(ctx context.Context, filter bson.M) ([]models.ElectionResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find election results: %w", err)
	}
	var results []models.ElectionResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode election results: %w", err)
	}
	if results == nil {
		results = []models.ElectionResult{}
	}
	return results, nil
}

// FindByParties returns all results recorded for a parties value.
func (r *ElectionResultRepository) FindByParties(ctx context.Context, parties string) ([]models.ElectionResult, error) {
	return r.Find(ctx, bson.M{"parties": parties})
}

// List returns every stored result.
func (r *ElectionResultRepository) List(ctx context.Context) ([]models.ElectionResult, error) {
	return r.Find(ctx, bson.M{})
}

// FindOne returns the first document matching the filter.
func (r *ElectionResultRepository) FindOne(ctx context.Context, filter bson.M) (*models.ElectionResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var result models.ElectionResult
	if err := r.coll.FindOne(ctx, filter).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FindByID returns a result by its hex object id.
func (r *ElectionResultRepository) FindByID(ctx context.Context, id string) (*models.ElectionResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.FindOne(ctx, bson.M{"_id": oid})
}

// Create inserts the result and stamps the generated id onto it.
func (r *ElectionResultRepository) Create(ctx context.Context, result *models.ElectionResult) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if result.ID.IsZero() {
		result.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, result); err != nil {
		return fmt.Errorf("create election result: %w", err)
	}
	return nil
}

// UpdateByID applies the patch and returns the document as it is after the update.
func (r *ElectionResultRepository) UpdateByID(ctx context.Context, id string, patch models.RigPatch) (*models.ElectionResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.ElectionResult
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": patch}, opts).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteByID removes the document and returns it as it was before deletion.
func (r *ElectionResultRepository) DeleteByID(ctx context.Context, id string) (*models.ElectionResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var deleted models.ElectionResult
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&deleted); err != nil {
		return nil, err
	}
	return &deleted, nil
}

// Ping checks the primary backing the collection.
func (r *ElectionResultRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("parse election result id %q: %w", id, err)
	}
	return oid, nil
}
