package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
)

// Clients bundles the Firestore and Firebase Auth clients created from one
// Firebase app.
type Clients struct {
	Firestore *firestore.Client
	Auth      *auth.Client
}

// InitFirestore creates the Firestore and Auth clients for app. The caller
// owns the returned clients and must Close them on shutdown.
func InitFirestore(ctx context.Context, app *firebase.App, logger *zap.Logger) (*Clients, error) {
	if app == nil {
		return nil, fmt.Errorf("InitFirestore: app cannot be nil")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Firestore: %w", err)
	}
	logger.Info("Firestore client initialized successfully.")

	authClient, err := app.Auth(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("app.Auth: %w", err)
	}
	logger.Info("Firebase Auth client initialized successfully.")

	return &Clients{Firestore: client, Auth: authClient}, nil
}

// Close releases the Firestore connection.
func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}
