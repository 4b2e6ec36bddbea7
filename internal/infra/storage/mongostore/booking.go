package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

const (
	bookingsCollection = "bookings"
	slotIndexName      = "confirmed_slot_uniq"
)

// BookingRepository бронирования в MongoDB
type BookingRepository struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

// NewBookingRepository создает репозиторий поверх базы db
func NewBookingRepository(client *mongo.Client, database string, timeout time.Duration) *BookingRepository {
	return &BookingRepository{
		client:  client,
		coll:    client.Database(database).Collection(bookingsCollection),
		timeout: timeout,
	}
}

// EnsureIndexes создаёт частичный уникальный индекс на подтверждённый слот
// и индекс для выборки по дате и массажисту
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}, {Key: "therapistId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName(slotIndexName).
				SetPartialFilterExpression(bson.M{"status": string(domain.StatusConfirmed)}),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "therapistId", Value: 1}},
			Options: options.Index().SetName("date_therapist_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("%w: EnsureIndexes: %v", ErrQuery, err)
	}
	return nil
}

// Create сохраняет бронирование; ID - uuid, createdAt - время вставки
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	created := booking.Clone()
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	doc, err := toBookingDocument(created)
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrQuery, err)
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: Create - date=%s time=%s therapist=%s",
				domain.ErrSlotTaken, booking.Date, booking.Time, booking.TherapistID)
		}
		return nil, fmt.Errorf("%w: Create - insert: %v", ErrQuery, err)
	}

	return created, nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc bookingDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: GetByID - id=%s", domain.ErrBookingNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - id=%s: %v", ErrQuery, id, err)
	}
	return doc.toDomain()
}

// List получает бронирования по фильтру
func (r *BookingRepository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := bson.M{}
	if filter.Date != nil {
		query["date"] = filter.Date.String()
	}
	if filter.TherapistID != nil {
		query["therapistId"] = *filter.TherapistID
	}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	} else if !filter.IncludeCancelled {
		query["status"] = bson.M{"$ne": string(domain.StatusCancelled)}
	}

	sort := bson.D{{Key: "date", Value: -1}, {Key: "time", Value: -1}}
	if filter.Date != nil {
		sort = bson.D{{Key: "time", Value: 1}}
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("%w: List - find: %v", ErrQuery, err)
	}
	defer cursor.Close(ctx)

	var docs []bookingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: List - decode: %v", ErrDecode, err)
	}

	bookings := make([]*domain.Booking, 0, len(docs))
	for _, doc := range docs {
		b, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// Cancel переводит подтверждённое бронирование в статус cancelled
func (r *BookingRepository) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":      string(domain.StatusCancelled),
		"cancelledAt": time.Now().UTC().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc bookingDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": string(domain.StatusConfirmed)}, update, opts).Decode(&doc)
	if err == nil {
		return doc.toDomain()
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: Cancel - id=%s: %v", ErrQuery, id, err)
	}

	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("%w: Cancel - id=%s", domain.ErrBookingNotCancellable, id)
}

// Ping проверяет соединение с MongoDB
func (r *BookingRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: Ping: %v", ErrQuery, err)
	}
	return nil
}

func (r *BookingRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return withTimeout(ctx, r.timeout)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
