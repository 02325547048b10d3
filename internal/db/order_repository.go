package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"pawmart-backend/internal/models"
)

const ordersCollection = "orders"

// firestoreOrderRepository implements OrderRepository using Firestore.
type firestoreOrderRepository struct {
	client *firestore.Client
}

// NewFirestoreOrderRepository creates a new instance of firestoreOrderRepository.
func NewFirestoreOrderRepository(client *firestore.Client, logger *zap.Logger) OrderRepository {
	if client == nil {
		logger.Fatal("Firestore client is not initialized for OrderRepository.")
	}
	return &firestoreOrderRepository{client: client}
}

func (r *firestoreOrderRepository) Create(ctx context.Context, order *models.Order) (string, error) {
	docRef := r.client.Collection(ordersCollection).NewDoc()
	if _, err := docRef.Create(ctx, order); err != nil {
		return "", classify(err, "create order")
	}
	order.ID = docRef.ID
	return docRef.ID, nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, orderID string) (Document, error) {
	if err := requireID(orderID, "order"); err != nil {
		return nil, err
	}
	snap, err := r.client.Collection(ordersCollection).Doc(orderID).Get(ctx)
	if err != nil {
		return nil, classify(err, fmt.Sprintf("get order '%s'", orderID))
	}
	return documentData(snap), nil
}

func (r *firestoreOrderRepository) ListByEmail(ctx context.Context, email string) ([]Document, error) {
	query := r.client.Collection(ordersCollection).Query
	if email != "" {
		query = query.Where("email", "==", email)
	}
	return collect(query.Documents(ctx), "list orders")
}

func (r *firestoreOrderRepository) Update(ctx context.Context, orderID string, fields map[string]interface{}) error {
	if err := requireID(orderID, "order"); err != nil {
		return err
	}
	_, err := r.client.Collection(ordersCollection).Doc(orderID).Update(ctx, toUpdates(fields))
	return classify(err, fmt.Sprintf("update order '%s'", orderID))
}

func (r *firestoreOrderRepository) Delete(ctx context.Context, orderID string) error {
	if err := requireID(orderID, "order"); err != nil {
		return err
	}
	_, err := r.client.Collection(ordersCollection).Doc(orderID).Delete(ctx, firestore.Exists)
	return classify(err, fmt.Sprintf("delete order '%s'", orderID))
}
