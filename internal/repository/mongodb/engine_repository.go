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

// EngineStore defines the persistence operations for engine service reports.
type EngineStore interface {
	Insert(ctx context.Context, record models.EngineRecord) (*models.EngineRecord, error)
	FindByID(ctx context.Context, id string) (*models.EngineRecord, error)
	FindBySerialNumber(ctx context.Context, serialNumber string) (*models.EngineRecord, error)
	FindAll(ctx context.Context) ([]models.EngineRecord, error)
	Update(ctx context.Context, id string, record models.EngineRecord) (*models.EngineRecord, error)
	Delete(ctx context.Context, id string) error
}

// EngineRepository implements EngineStore backed by the engines collection.
type EngineRepository struct {
	collection *mongo.Collection
}

// Insert stores a new engine report. DateOfFill defaults to the insertion
// time when the form left it unset.
func (r *EngineRepository) Insert(ctx context.Context, record models.EngineRecord) (*models.EngineRecord, error) {
	record.ID = primitive.NewObjectID()
	if record.DateOfFill.IsZero() {
		record.DateOfFill = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return nil, fmt.Errorf("insert engine record: %w", err)
	}
	return &record, nil
}

// FindByID looks up one report by its hex object id.
func (r *EngineRepository) FindByID(ctx context.Context, id string) (*models.EngineRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid engine id %q: %w", id, err)
	}

	var record models.EngineRecord
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// FindBySerialNumber returns the most recent report for the given engine
// serial number, resolving duplicate visits by fill date.
func (r *EngineRepository) FindBySerialNumber(ctx context.Context, serialNumber string) (*models.EngineRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date_of_fill", Value: -1}})

	var record models.EngineRecord
	err := r.collection.FindOne(ctx, bson.M{"engine_serial_number": serialNumber}, opts).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindAll returns every engine report, most recently filled first.
func (r *EngineRepository) FindAll(ctx context.Context) ([]models.EngineRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date_of_fill", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list engine records: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.EngineRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode engine records: %w", err)
	}
	return records, nil
}

// Update replaces the report under the given id.
func (r *EngineRepository) Update(ctx context.Context, id string, record models.EngineRecord) (*models.EngineRecord, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	record.ID = existing.ID
	if record.DateOfFill.IsZero() {
		record.DateOfFill = time.Now()
	}

	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": existing.ID}, record); err != nil {
		return nil, fmt.Errorf("update engine record: %w", err)
	}
	return &record, nil
}

// Delete removes one report by id. mongo.ErrNoDocuments is returned when the
// id does not exist.
func (r *EngineRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid engine id %q: %w", id, err)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("delete engine record: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
