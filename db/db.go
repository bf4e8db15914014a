package db

import (
	"context"
	"errors"
	"time"

	"medibook/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo bundles the client and the named collections. It is constructed
// once in main and injected into every handler that touches storage; no
// package keeps a collection handle of its own.
type Mongo struct {
	Client   *mongo.Client
	Services *mongo.Collection
	Bookings *mongo.Collection
	Users    *mongo.Collection
	Doctors  *mongo.Collection
	Payments *mongo.Collection
}

// Connect opens the client, pings it, and resolves the collections.
func Connect(ctx context.Context, cfg config.Config) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	database := client.Database(cfg.MongoDB)
	return &Mongo{
		Client:   client,
		Services: database.Collection("services"),
		Bookings: database.Collection("bookings"),
		Users:    database.Collection("users"),
		Doctors:  database.Collection("doctors"),
		Payments: database.Collection("payments"),
	}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// Role returns the stored role for an email, satisfying the authorization
// gate's lookup. Unknown users resolve to an empty role.
func (m *Mongo) Role(ctx context.Context, email string) (string, error) {
	var user struct {
		Role string `bson:"role"`
	}
	err := m.Users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return user.Role, nil
}
