package otp

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "otp-verifications"

type Repository interface {
	DeleteByEmail(ctx context.Context, email string) error
	Insert(ctx context.Context, v *Verification) error
	// FindByEmailAndCode returns nil without error when no record matches;
	// a wrong email and a wrong code are indistinguishable.
	FindByEmailAndCode(ctx context.Context, email, code string) (*Verification, error)
	MarkVerified(ctx context.Context, id primitive.ObjectID) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
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

func (r *mongoRepository) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.collection().DeleteMany(ctx, bson.M{"email": email})
	return err
}

func (r *mongoRepository) Insert(ctx context.Context, v *Verification) error {
	_, err := r.collection().InsertOne(ctx, v)
	return err
}

func (r *mongoRepository) FindByEmailAndCode(ctx context.Context, email, code string) (*Verification, error) {
	var v Verification
	err := r.collection().FindOne(ctx, bson.M{"email": email, "otp": code}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *mongoRepository) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"verified": true}},
	)
	return err
}

func (r *mongoRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.collection().DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
