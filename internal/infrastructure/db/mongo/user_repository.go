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

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/validation"
)

const usersCollection = "users"

// UserRepository implements ports.UserStore on a MongoDB collection whose
// unique index on email is the only guard against duplicate registrations.
type UserRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection), now: time.Now}
}

type mongoUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"first_name"`
	LastName  string             `bson:"last_name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"created_at"`
}

// profileProjection excludes identifiers, metadata and the digest.
var profileProjection = bson.D{
	{Key: "_id", Value: 0},
	{Key: "password", Value: 0},
	{Key: "created_at", Value: 0},
}

// Create validates c and inserts it. Duplicate emails surface from the unique
// index as domain.ErrDuplicateEmail; there is no prior existence check.
func (r *UserRepository) Create(ctx context.Context, c domain.Candidate) (*domain.User, error) {
	if err := validation.Candidate(c); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	user := c.User(r.now().UTC())
	doc := mongoUser{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Password:  user.PasswordHash,
		CreatedAt: user.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, insertError(err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find user: %v", domain.ErrStore, err)
	}

	return &domain.User{
		ID:           mu.ID.Hex(),
		FirstName:    mu.FirstName,
		LastName:     mu.LastName,
		Email:        mu.Email,
		PasswordHash: mu.Password,
		CreatedAt:    mu.CreatedAt,
	}, nil
}

// FindProfileByEmail reads the display projection only; the digest never
// leaves the database on this path.
func (r *UserRepository) FindProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p struct {
		FirstName string `bson:"first_name"`
		LastName  string `bson:"last_name"`
		Email     string `bson:"email"`
	}
	opts := options.FindOne().SetProjection(profileProjection)
	if err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find profile: %v", domain.ErrStore, err)
	}
	return &domain.Profile{FirstName: p.FirstName, LastName: p.LastName, Email: p.Email}, nil
}

// insertError maps a unique-index violation to domain.ErrDuplicateEmail and
// anything else to domain.ErrStore.
func insertError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateEmail
	}
	return fmt.Errorf("%w: insert user: %v", domain.ErrStore, err)
}

// Ping reports whether the backing deployment is reachable.
func (r *UserRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}

// EnsureIndexes creates the unique email index the uniqueness invariant relies on.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_unique").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}
