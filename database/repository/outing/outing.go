package outingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bricker/vivial-sub000/database"
	"github.com/bricker/vivial-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no outing matches the query.
var ErrNotFound = errors.New("outing not found")

// OutingRepository defines methods for outing data access.
type OutingRepository interface {
	// GetByID retrieves an outing by its unique ID.
	GetByID(id string) (*models.Outing, error)
	// Create inserts a new outing record.
	Create(outing *models.Outing) error
	// Update modifies an existing outing record, overwriting it wholesale.
	Update(outing *models.Outing) error
}

// MongoOutingRepo implements OutingRepository using MongoDB.
type MongoOutingRepo struct {
	coll *mongo.Collection
}

// NewMongoOutingRepo creates a new instance of OutingRepository using MongoDB.
func NewMongoOutingRepo() OutingRepository {
	coll := database.MongoClient.Database("vivial").Collection("outings")
	repo := &MongoOutingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoOutingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "account_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an outing by its unique ID.
func (r *MongoOutingRepo) GetByID(id string) (*models.Outing, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var outing models.Outing
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&outing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch outing with id %s: %w", id, err)
	}
	return &outing, nil
}

// Create inserts a new outing document.
func (r *MongoOutingRepo) Create(outing *models.Outing) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	outing.CreatedAt = now
	outing.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, outing)
	if err != nil {
		return fmt.Errorf("failed to create outing: %w", err)
	}
	return nil
}

// Update overwrites an existing outing document.
func (r *MongoOutingRepo) Update(outing *models.Outing) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	outing.UpdatedAt = time.Now()
	filter := bson.M{"id": outing.ID}
	update := bson.M{"$set": outing}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update outing with id %s: %w", outing.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
