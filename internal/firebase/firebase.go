package firebase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"pawmart-backend/internal/config"
)

// NewApp initializes the Firebase Admin SDK for the configured project.
// Credentials come from a service account file, a base64 encoded service
// account JSON, or, against the emulator, from nothing at all.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*firebase.App, error) {
	if cfg == nil {
		return nil, errors.New("firebase: config cannot be nil")
	}
	opts, err := credentialOptions(cfg, logger)
	if err != nil {
		return nil, err
	}

	conf := &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}
	logger.Info("Firebase app initialized", zap.String("projectId", cfg.FirebaseProjectID))
	return app, nil
}

func credentialOptions(cfg *config.Config, logger *zap.Logger) ([]option.ClientOption, error) {
	switch {
	case cfg.GoogleApplicationCredentials != "":
		if _, err := os.Stat(cfg.GoogleApplicationCredentials); os.IsNotExist(err) {
			logger.Warn("Credentials file does not exist", zap.String("path", cfg.GoogleApplicationCredentials))
		}
		return []option.ClientOption{option.WithCredentialsFile(cfg.GoogleApplicationCredentials)}, nil
	case cfg.FirebaseServiceAccountJSONBase64 != "":
		jsonKey, err := base64.StdEncoding.DecodeString(cfg.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return nil, errors.New("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 is not a valid base64 string")
		}
		return []option.ClientOption{option.WithCredentialsJSON(jsonKey)}, nil
	case cfg.FirestoreEmulatorHost != "":
		// The Firestore client reads FIRESTORE_EMULATOR_HOST itself.
		if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
			_ = os.Setenv("FIRESTORE_EMULATOR_HOST", cfg.FirestoreEmulatorHost)
		}
		logger.Info("Using Firestore emulator", zap.String("host", cfg.FirestoreEmulatorHost))
		return []option.ClientOption{option.WithoutAuthentication()}, nil
	}
	return nil, errors.New("either GOOGLE_APPLICATION_CREDENTIALS, FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 or FIRESTORE_EMULATOR_HOST must be set")
}
