// internal/infrastructure/database/mongo/user_repository.go
package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/your-org/storefront-api/internal/domain/user"
)

// UserRepository implements user.Repository against MongoDB
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a user repository bound to the Users
// collection
func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{
		collection: client.Collection(UsersCollection),
	}
}

// FindAll retrieves every user
func (r *UserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []user.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByID retrieves a user by id
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, user.ErrNotFound
	}

	var u user.User
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Insert stores a new user. The unique email index surfaces duplicates.
func (r *UserRepository) Insert(ctx context.Context, u *user.User) error {
	_, err := r.collection.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return user.ErrDuplicateEmail
	}
	return err
}

// Delete removes a user, returning the deleted record
func (r *UserRepository) Delete(ctx context.Context, id string) (*user.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, user.ErrNotFound
	}

	var u user.User
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
