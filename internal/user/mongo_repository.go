package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CollectionName is the Mongo collection holding user documents.
const CollectionName = "users"

const emailIndexName = "email_unique"

type mongoUser struct {
	ID        string    `bson:"_id"`
	Username  string    `bson:"username"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d mongoUser) toModel() *User {
	return &User{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		CreatedAt:    d.CreatedAt,
		passwordHash: d.Password,
	}
}

// MongoStore stores users as documents in a MongoDB collection.
type MongoStore struct {
	passwordVerifier

	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique email index. Concurrent signups for the
// same address rely on it.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(emailIndexName),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

func (s *MongoStore) Create(ctx context.Context, username, email, passwordHash string) (*User, error) {
	if err := validateRecord(username, email, passwordHash); err != nil {
		return nil, err
	}

	doc := mongoUser{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Password:  passwordHash,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	doc.Password = ""
	return doc.toModel(), nil
}

func (s *MongoStore) FindByEmail(ctx context.Context, email string, opts ...FindOption) (*User, error) {
	o := applyFindOptions(opts)
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}}, o.withPassword)
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*User, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id}}, false)
}

func (s *MongoStore) Exists(ctx context.Context, email string) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{{Key: "email", Value: email}}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return n > 0, nil
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.D, withPassword bool) (*User, error) {
	var doc mongoUser
	err := s.coll.FindOne(ctx, filter, findOneOptions(withPassword)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return doc.toModel(), nil
}

func findOneOptions(withPassword bool) *options.FindOneOptionsBuilder {
	opts := options.FindOne()
	if !withPassword {
		opts.SetProjection(passwordExcluded())
	}
	return opts
}

func passwordExcluded() bson.D {
	return bson.D{{Key: "password", Value: 0}}
}
