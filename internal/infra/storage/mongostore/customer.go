package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

const customersCollection = "customers"

// CustomerRepository карточки клиентов в MongoDB, _id - телефон
type CustomerRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewCustomerRepository создает репозиторий клиентов
func NewCustomerRepository(client *mongo.Client, database string, timeout time.Duration) *CustomerRepository {
	return &CustomerRepository{
		coll:    client.Database(database).Collection(customersCollection),
		timeout: timeout,
	}
}

// Upsert создаёт карточку или обновляет контакты и счётчик бронирований
func (r *CustomerRepository) Upsert(ctx context.Context, record *domain.CustomerRecord) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	set := bson.M{"name": record.Name}
	if record.Email != "" {
		set["email"] = record.Email
	}
	update := bson.M{
		"$set": set,
		"$max": bson.M{"lastBookingAt": record.LastBookingAt.UTC()},
		"$inc": bson.M{"totalBookings": 1},
	}

	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": record.Phone}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: Upsert - phone=%s: %v", ErrQuery, record.Phone, err)
	}
	return nil
}

// GetByPhone получает карточку клиента по телефону
func (r *CustomerRepository) GetByPhone(ctx context.Context, phone string) (*domain.CustomerRecord, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var doc customerDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": phone}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: phone=%s", ErrCustomerNotFound, phone)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - phone=%s: %v", ErrQuery, phone, err)
	}
	return doc.toDomain(), nil
}
