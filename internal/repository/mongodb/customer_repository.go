package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arsonstech/fieldservice/internal/domain/models"
)

// CustomerStore defines the persistence operations for customer records.
type CustomerStore interface {
	Insert(ctx context.Context, record models.CustomerRecord) (*models.CustomerRecord, error)
	FindByID(ctx context.Context, id string) (*models.CustomerRecord, error)
	FindByEngineNumber(ctx context.Context, engineNumber string) (*models.CustomerRecord, error)
	FindAll(ctx context.Context) ([]models.CustomerRecord, error)
	Update(ctx context.Context, id string, record models.CustomerRecord) (*models.CustomerRecord, error)
	Delete(ctx context.Context, id string) error
	FindWarrantyDueBetween(ctx context.Context, from, to time.Time) ([]models.CustomerRecord, error)
}

// CustomerRepository implements CustomerStore backed by the customer_details
// collection.
type CustomerRepository struct {
	collection *mongo.Collection
}

// Insert stores a new customer record and returns it with the generated id.
func (r *CustomerRepository) Insert(ctx context.Context, record models.CustomerRecord) (*models.CustomerRecord, error) {
	now := time.Now()
	record.ID = primitive.NewObjectID()
	record.CreatedAt = now
	record.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return nil, fmt.Errorf("insert customer record: %w", err)
	}
	return &record, nil
}

// FindByID looks up one record by its hex object id.
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*models.CustomerRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id %q: %w", id, err)
	}

	var record models.CustomerRecord
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByEngineNumber performs the secondary lookup on tractorInfo.engineNumber.
func (r *CustomerRepository) FindByEngineNumber(ctx context.Context, engineNumber string) (*models.CustomerRecord, error) {
	var record models.CustomerRecord
	err := r.collection.FindOne(ctx, bson.M{"tractorInfo.engineNumber": engineNumber}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindAll returns every customer record, newest first.
func (r *CustomerRepository) FindAll(ctx context.Context) ([]models.CustomerRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list customer records: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.CustomerRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode customer records: %w", err)
	}
	return records, nil
}

// Update replaces the whole document, preserving the original creation time.
func (r *CustomerRepository) Update(ctx context.Context, id string, record models.CustomerRecord) (*models.CustomerRecord, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = time.Now()

	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": existing.ID}, record); err != nil {
		return nil, fmt.Errorf("update customer record: %w", err)
	}
	return &record, nil
}

// Delete removes one record by id. mongo.ErrNoDocuments is returned when the
// id does not exist.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid customer id %q: %w", id, err)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("delete customer record: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FindWarrantyDueBetween returns the records whose warrantyUpto falls inside
// the inclusive [from, to] range, in natural query order.
func (r *CustomerRepository) FindWarrantyDueBetween(ctx context.Context, from, to time.Time) ([]models.CustomerRecord, error) {
	filter := bson.M{
		"tractorInfo.warrantyUpto": bson.M{
			"$gte": from,
			"$lte": to,
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query warranty due range: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.CustomerRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode warranty due records: %w", err)
	}
	return records, nil
}
