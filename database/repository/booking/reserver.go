// File: database/repository/booking/reserver.go
package bookingRepo

import (
	"errors"
	"fmt"
	"time"

	"github.com/bricker/vivial-sub000/database"
	"github.com/bricker/vivial-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReserverDetailsRepository defines methods for reserver-details data access.
type ReserverDetailsRepository interface {
	// GetByID retrieves reserver details by their unique ID.
	GetByID(id string) (*models.ReserverDetails, error)
	// GetByAccount retrieves the reserver details stored for an account, if any.
	GetByAccount(accountID string) (*models.ReserverDetails, error)
	// Create inserts a new reserver-details record.
	Create(details *models.ReserverDetails) error
	// Update modifies an existing reserver-details record.
	Update(details *models.ReserverDetails) error
}

// MongoReserverDetailsRepo implements ReserverDetailsRepository using MongoDB.
type MongoReserverDetailsRepo struct {
	coll *mongo.Collection
}

// NewMongoReserverDetailsRepo creates a new ReserverDetailsRepository using MongoDB.
func NewMongoReserverDetailsRepo() ReserverDetailsRepository {
	coll := database.MongoClient.Database("vivial").Collection("reserver_details")
	repo := &MongoReserverDetailsRepo{coll: coll}

	if err := repo.ensureReserverIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoReserverDetailsRepo) ensureReserverIndexes() error {
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

// GetByID retrieves reserver details by their unique ID.
func (r *MongoReserverDetailsRepo) GetByID(id string) (*models.ReserverDetails, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var details models.ReserverDetails
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&details); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch reserver details with id %s: %w", id, err)
	}
	return &details, nil
}

// GetByAccount retrieves the reserver details stored for an account.
func (r *MongoReserverDetailsRepo) GetByAccount(accountID string) (*models.ReserverDetails, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var details models.ReserverDetails
	if err := r.coll.FindOne(ctx, bson.M{"account_id": accountID}).Decode(&details); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch reserver details for account %s: %w", accountID, err)
	}
	return &details, nil
}

// Create inserts a new reserver-details document.
func (r *MongoReserverDetailsRepo) Create(details *models.ReserverDetails) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, details)
	if err != nil {
		return fmt.Errorf("failed to create reserver details: %w", err)
	}
	return nil
}

// Update overwrites an existing reserver-details document.
func (r *MongoReserverDetailsRepo) Update(details *models.ReserverDetails) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": details.ID}
	update := bson.M{"$set": details}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update reserver details with id %s: %w", details.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
