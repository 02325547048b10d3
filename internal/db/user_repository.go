package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"pawmart-backend/internal/models"
)

const usersCollection = "users"

// firestoreUserRepository implements the UserRepository interface using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
	logger *zap.Logger
}

// NewFirestoreUserRepository creates a new instance of firestoreUserRepository.
func NewFirestoreUserRepository(client *firestore.Client, logger *zap.Logger) UserRepository {
	if client == nil {
		logger.Fatal("Firestore client is not initialized for UserRepository.")
	}
	return &firestoreUserRepository{client: client, logger: logger}
}

// Create adds a new user document. The UID is used as the document ID, and
// Create fails if the document already exists.
func (r *firestoreUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := requireID(user.UID, "user"); err != nil {
		return err
	}
	_, err := r.client.Collection(usersCollection).Doc(user.UID).Create(ctx, user)
	return classify(err, fmt.Sprintf("create user '%s'", user.UID))
}

// GetByID is a single point read keyed by UID. It is the lookup behind every
// admin decision and is deliberately not cached.
func (r *firestoreUserRepository) GetByID(ctx context.Context, uid string) (*models.User, error) {
	if err := requireID(uid, "user"); err != nil {
		return nil, err
	}
	snap, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		return nil, classify(err, fmt.Sprintf("get user '%s'", uid))
	}

	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for ID '%s': %w", uid, err)
	}
	user.UID = snap.Ref.ID
	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, uid string, fields map[string]interface{}) error {
	if err := requireID(uid, "user"); err != nil {
		return err
	}
	_, err := r.client.Collection(usersCollection).Doc(uid).Update(ctx, toUpdates(fields))
	return classify(err, fmt.Sprintf("update user '%s'", uid))
}

// List returns every user record, ordered by document ID.
func (r *firestoreUserRepository) List(ctx context.Context) ([]*models.User, error) {
	iter := r.client.Collection(usersCollection).Documents(ctx)
	defer iter.Stop()

	var users []*models.User
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classify(err, "list users")
		}
		var user models.User
		if err := snap.DataTo(&user); err != nil {
			r.logger.Warn("Skipping undecodable user document", zap.String("uid", snap.Ref.ID), zap.Error(err))
			continue
		}
		user.UID = snap.Ref.ID
		users = append(users, &user)
	}
	return users, nil
}
