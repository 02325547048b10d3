package db

import (
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// documentData copies a snapshot's fields and sets "_id" to the document ID,
// which is the only identifier routes can address.
func documentData(snap *firestore.DocumentSnapshot) Document {
	data := snap.Data()
	if data == nil {
		data = Document{}
	}
	data["_id"] = snap.Ref.ID
	return data
}

// collect drains iter into documents.
func collect(iter *firestore.DocumentIterator, op string) ([]Document, error) {
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classify(err, op)
		}
		docs = append(docs, documentData(snap))
	}
	return docs, nil
}

func toUpdates(fields map[string]interface{}) []firestore.Update {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	return updates
}

func requireID(id, kind string) error {
	if id == "" {
		return fmt.Errorf("%s ID cannot be empty", kind)
	}
	return nil
}
