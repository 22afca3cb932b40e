package config

import (
	"context"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InitMongo connects, pings, and ensures the unique ticket index. Ticket IDs
// are probabilistically unique; the index turns a collision into a duplicate
// key error the workflow retries on.
func InitMongo(cfg *AppConfig) (*mongo.Client, *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}

	if err := client.Ping(ctx, nil); err != nil {
		slog.Error("Failed to ping MongoDB", "error", err)
		os.Exit(1)
	}

	db := client.Database(cfg.MongoDB)

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "ticketId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection("reports").Indexes().CreateOne(ctx, indexModel); err != nil {
		slog.Warn("Failed to create ticketId index", "error", err)
	}

	slog.Info("Database connected successfully")
	return client, db
}
