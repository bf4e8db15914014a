package booking

import (
	"context"
	"errors"

	"medibook/db"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the persistence surface the booking handlers and the guard need.
// The Mongo implementation below is the real one; tests use an in-memory
// fake.
type Store interface {
	Services(ctx context.Context) ([]models.Service, error)
	ServiceSummaries(ctx context.Context) ([]models.Service, error)
	BookingsForDate(ctx context.Context, date string) ([]models.Booking, error)
	BookingsForPatient(ctx context.Context, patient string) ([]models.Booking, error)
	// FindBooking returns nil, nil when no booking matches the triple.
	FindBooking(ctx context.Context, treatmentName, date, patient string) (*models.Booking, error)
	InsertBooking(ctx context.Context, b models.Booking) error
	// BookingByID returns nil, nil when the id is unknown.
	BookingByID(ctx context.Context, id string) (*models.Booking, error)
}

type MongoStore struct {
	store *db.Mongo
}

func NewMongoStore(store *db.Mongo) *MongoStore {
	return &MongoStore{store: store}
}

func (s *MongoStore) Services(ctx context.Context) ([]models.Service, error) {
	cur, err := s.store.Services.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var services []models.Service
	if err := cur.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// ServiceSummaries lists the catalog without slot templates, the projection
// /services responds with.
func (s *MongoStore) ServiceSummaries(ctx context.Context) ([]models.Service, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1, "price": 1})
	cur, err := s.store.Services.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var services []models.Service
	if err := cur.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (s *MongoStore) BookingsForDate(ctx context.Context, date string) ([]models.Booking, error) {
	return s.findBookings(ctx, bson.M{"date": date})
}

func (s *MongoStore) BookingsForPatient(ctx context.Context, patient string) ([]models.Booking, error) {
	return s.findBookings(ctx, bson.M{"patient": patient})
}

func (s *MongoStore) findBookings(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	cur, err := s.store.Bookings.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *MongoStore) FindBooking(ctx context.Context, treatmentName, date, patient string) (*models.Booking, error) {
	filter := bson.M{
		"treatmentName": treatmentName,
		"date":          date,
		"patient":       patient,
	}
	var b models.Booking
	err := s.store.Bookings.FindOne(ctx, filter).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *MongoStore) InsertBooking(ctx context.Context, b models.Booking) error {
	_, err := s.store.Bookings.InsertOne(ctx, b)
	return err
}

func (s *MongoStore) BookingByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := s.store.Bookings.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
