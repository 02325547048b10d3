package db

import (
	"context"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"pawmart-backend/internal/models"
)

const auditLogsCollection = "auditLogs"

type firestoreAuditRepository struct {
	client *firestore.Client
}

// NewFirestoreAuditRepository creates a Firestore-backed AuditRepository.
func NewFirestoreAuditRepository(client *firestore.Client, logger *zap.Logger) AuditRepository {
	if client == nil {
		logger.Fatal("Firestore client is not initialized for AuditRepository.")
	}
	return &firestoreAuditRepository{client: client}
}

// Create appends an audit entry with an auto-generated ID. The timestamp is
// set server-side.
func (r *firestoreAuditRepository) Create(ctx context.Context, entry models.AuditLog) error {
	_, _, err := r.client.Collection(auditLogsCollection).Add(ctx, entry)
	return classify(err, "create audit log")
}
