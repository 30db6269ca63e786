package registration

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gucci1909/regis/internal/database"
)

// Registration records carry the submitted fields verbatim, so they are
// stored and listed as open documents rather than a fixed struct.
type Repository interface {
	Insert(ctx context.Context, category Category, doc bson.M) (primitive.ObjectID, error)
	ListPending(ctx context.Context, category Category) ([]bson.M, error)
	UpdateStatus(ctx context.Context, category Category, id primitive.ObjectID, status Status, updatedAt time.Time) (int64, error)
}

type mongoRepository struct {
	db *mongo.Database
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{db: db}
}

func (r *mongoRepository) Insert(ctx context.Context, category Category, doc bson.M) (primitive.ObjectID, error) {
	res, err := r.db.Collection(category.Collection).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return database.InsertedObjectID(res)
}

func (r *mongoRepository) ListPending(ctx context.Context, category Category) ([]bson.M, error) {
	cursor, err := r.db.Collection(category.Collection).Find(ctx, bson.M{"status": StatusPending})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []bson.M{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateStatus returns the number of documents actually modified. A repeated
// transition to the same status modifies nothing, which callers surface as
// not-found; the per-document update is what linearizes racing moderators.
func (r *mongoRepository) UpdateStatus(ctx context.Context, category Category, id primitive.ObjectID, status Status, updatedAt time.Time) (int64, error) {
	res, err := r.db.Collection(category.Collection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": updatedAt}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
