package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fintrack/finance-api/internal/core/domain"
)

const collectionEntries = "entries"

type EntryRepository struct {
	col *mongo.Collection
}

func NewEntryRepository(db *mongo.Database) *EntryRepository {
	return &EntryRepository{col: db.Collection(collectionEntries)}
}

type mongoEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Kind        string             `bson:"kind"`
	Amount      float64            `bson:"amount"`
	Category    string             `bson:"category"`
	Description string             `bson:"description,omitempty"`
	Date        time.Time          `bson:"date"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (e mongoEntry) toDomain() *domain.Entry {
	return &domain.Entry{
		ID:          e.ID.Hex(),
		UserID:      e.UserID,
		Kind:        domain.EntryKind(e.Kind),
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date.UTC(),
		CreatedAt:   e.CreatedAt.UTC(),
	}
}

// Create inserts a new entry document.
func (r *EntryRepository) Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoEntry{
		ID:          primitive.NewObjectID(),
		UserID:      e.UserID,
		Kind:        string(e.Kind),
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date.UTC().Truncate(time.Millisecond),
		CreatedAt:   e.CreatedAt.UTC().Truncate(time.Millisecond),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert entry: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return doc.toDomain(), nil
}

// FindByID retrieves an entry by id, filtered by owner.
func (r *EntryRepository) FindByID(ctx context.Context, userID, id string) (*domain.Entry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEntryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoEntry
	if err := r.col.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("find entry: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return doc.toDomain(), nil
}

// ListByUser returns the user's entries, newest date first.
func (r *EntryRepository) ListByUser(ctx context.Context, userID string, kind domain.EntryKind) ([]*domain.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID}
	if kind != "" {
		filter["kind"] = string(kind)
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w: %w", domain.ErrStoreUnavailable, err)
	}
	defer cur.Close(ctx)

	var docs []mongoEntry
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}

	out := make([]*domain.Entry, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *EntryRepository) Delete(ctx context.Context, userID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEntryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete entry: %w: %w", domain.ErrStoreUnavailable, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// EnsureIndexes creates the per-user listing index.
func (r *EntryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("entries indexes: %w", err)
	}
	return nil
}
