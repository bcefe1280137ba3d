package services

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	mongoClient *mongo.Client
	database    *mongo.Database
)

// GetDatabase returns the MongoDB database instance
func GetDatabase() *mongo.Database {
	return database
}

// InitMongoDB initializes MongoDB connection
func InitMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	slog.Info("Connected to MongoDB")
	mongoClient = client

	return client, nil
}

// InitServices initializes all services
func InitServices(client *mongo.Client, databaseName string) {
	database = client.Database(databaseName)

	// Create indexes
	createIndexes()
}

// createIndexes creates necessary database indexes. The unique compound
// indexes on likes and follows are what makes the (subject_id, actor_id)
// composite key an upsert target rather than an application-level check.
func createIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	likesCollection := database.Collection("likes")
	likesCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "subject_id", Value: 1}, {Key: "actor_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.M{"subject_id": 1}},
	})

	commentsCollection := database.Collection("comments")
	commentsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.M{"subject_id": 1}},
		{Keys: bson.M{"actor_id": 1}},
		{Keys: bson.M{"created_at": -1}},
	})

	followsCollection := database.Collection("follows")
	followsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "subject_id", Value: 1}, {Key: "actor_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.M{"subject_id": 1}},
	})

	usersCollection := database.Collection("users")
	usersCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.M{"email": 1}, Options: options.Index().SetUnique(true)},
		{Keys: bson.M{"user_id": 1}, Options: options.Index().SetUnique(true)},
	})
}
