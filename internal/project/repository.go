package project

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gucci1909/regis/internal/database"
)

const collectionName = "projects"

type Repository interface {
	Insert(ctx context.Context, p *Project) (primitive.ObjectID, error)
	ListNames(ctx context.Context) ([]string, error)
	// GetByName returns nil without error when no project matches.
	GetByName(ctx context.Context, name string) (*Project, error)
}

type mongoRepository struct {
	db *mongo.Database
}

func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{db: db}
}

func (r *mongoRepository) collection() *mongo.Collection {
	return r.db.Collection(collectionName)
}

func (r *mongoRepository) Insert(ctx context.Context, p *Project) (primitive.ObjectID, error) {
	res, err := r.collection().InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return database.InsertedObjectID(res)
}

func (r *mongoRepository) ListNames(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1})
	cursor, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Name string `bson:"name"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		names = append(names, doc.Name)
	}
	return names, nil
}

func (r *mongoRepository) GetByName(ctx context.Context, name string) (*Project, error) {
	var p Project
	err := r.collection().FindOne(ctx, bson.M{"name": name}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
