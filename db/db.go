package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client          *mongo.Client
	PGCollection    *mongo.Collection
	AdminCollection *mongo.Collection
)

// Connect establishes the MongoDB connection and binds the collections.
func Connect(ctx context.Context, uri, dbName string) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	Client = client

	database := client.Database(dbName)
	PGCollection = database.Collection("pgs")
	AdminCollection = database.Collection("admins")

	// Admin emails must be unique.
	_, err = AdminCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
