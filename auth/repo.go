package auth

import (
	"context"
	"errors"

	"pgfinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNoAdmin        = errors.New("admin not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// AdminRepo owns the admin credential records.
type AdminRepo interface {
	ByEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
}

type MongoAdminRepo struct {
	coll *mongo.Collection
}

func NewMongoAdminRepo(coll *mongo.Collection) *MongoAdminRepo {
	return &MongoAdminRepo{coll: coll}
}

func (r *MongoAdminRepo) ByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoAdmin
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *MongoAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	admin.ID = primitive.NewObjectID()
	_, err := r.coll.InsertOne(ctx, admin)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}
