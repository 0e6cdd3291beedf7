package pgs

import (
	"context"
	"errors"
	"time"

	"pgfinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("pg not found")

// Repo owns the PG listing collection.
type Repo interface {
	// Create assigns the id and timestamps and persists the listing.
	Create(ctx context.Context, pg *models.PG) error
	All(ctx context.Context) ([]models.PG, error)
	ByID(ctx context.Context, id string) (*models.PG, error)
	Delete(ctx context.Context, id string) error
}

type MongoRepo struct {
	coll *mongo.Collection
}

func NewMongoRepo(coll *mongo.Collection) *MongoRepo {
	return &MongoRepo{coll: coll}
}

func (r *MongoRepo) Create(ctx context.Context, pg *models.PG) error {
	now := time.Now()
	pg.ID = primitive.NewObjectID()
	pg.CreatedAt = now
	pg.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, pg)
	return err
}

func (r *MongoRepo) All(ctx context.Context) ([]models.PG, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	pgs := []models.PG{}
	if err := cursor.All(ctx, &pgs); err != nil {
		return nil, err
	}
	return pgs, nil
}

func (r *MongoRepo) ByID(ctx context.Context, id string) (*models.PG, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var pg models.PG
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&pg)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pg, nil
}

func (r *MongoRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
