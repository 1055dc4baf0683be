package experienceRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"hufbook/database"
	"hufbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoExperienceRepo implements ExperienceRepository using MongoDB.
type MongoExperienceRepo struct {
	coll *mongo.Collection
}

// NewMongoExperienceRepo creates a new instance of ExperienceRepository using MongoDB.
func NewMongoExperienceRepo() ExperienceRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("experiences")
	return &MongoExperienceRepo{coll: coll}
}

func (r *MongoExperienceRepo) GetByID(ctx context.Context, id string) (*models.Experience, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var exp models.Experience
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&exp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch experience with id %s: %w", id, err)
	}
	return &exp, nil
}

func (r *MongoExperienceRepo) Search(ctx context.Context, search string) ([]models.Experience, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if search != "" {
		// Quote the user text so it is matched literally, not as a pattern.
		pattern := regexp.QuoteMeta(search)
		filter = bson.M{"$or": bson.A{
			bson.M{"title": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"location": bson.M{"$regex": pattern, "$options": "i"}},
		}}
	}

	opts := options.Find().SetProjection(bson.M{"timeSlots": 0})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve experiences: %w", err)
	}
	defer cursor.Close(ctx)

	experiences := []models.Experience{}
	for cursor.Next(ctx) {
		var exp models.Experience
		if err := cursor.Decode(&exp); err != nil {
			return nil, fmt.Errorf("failed to decode experience: %w", err)
		}
		experiences = append(experiences, exp)
	}
	return experiences, cursor.Err()
}

func (r *MongoExperienceRepo) Create(ctx context.Context, exp *models.Experience) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, exp); err != nil {
		return fmt.Errorf("failed to create experience: %w", err)
	}
	return nil
}
