package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const clientsCollection = "clients"

// FirestoreDocuments keeps one document per account in the clients
// collection, matching the web client's layout.
type FirestoreDocuments struct {
	Client *firestore.Client
}

func NewFirestoreDocuments(client *firestore.Client) *FirestoreDocuments {
	return &FirestoreDocuments{Client: client}
}

func (d *FirestoreDocuments) col() *firestore.CollectionRef {
	return d.Client.Collection(clientsCollection)
}

func (d *FirestoreDocuments) GetUserRecord(ctx context.Context, accountID string) (Record, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, errors.New("empty account id")
	}
	snap, err := d.col().Doc(accountID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get user record: %w", err)
	}
	return Record(snap.Data()), nil
}

// UpdateUserRecord merges fields into the record, creating it when
// absent, and stamps updatedAt server-side.
func (d *FirestoreDocuments) UpdateUserRecord(ctx context.Context, accountID string, fields Record) error {
	data := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		data[k] = v
	}
	data["updatedAt"] = firestore.ServerTimestamp
	if _, err := d.col().Doc(accountID).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("update user record: %w", err)
	}
	return nil
}

// SubscribeUserRecord streams snapshots until cancelled. Deleted records
// are delivered as nil.
func (d *FirestoreDocuments) SubscribeUserRecord(ctx context.Context, accountID string, cb func(Record)) (func(), error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, errors.New("empty account id")
	}
	ctx, cancel := context.WithCancel(ctx)
	it := d.col().Doc(accountID).Snapshots(ctx)
	go func() {
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				return
			}
			if !snap.Exists() {
				cb(nil)
				continue
			}
			cb(Record(snap.Data()))
		}
	}()
	return cancel, nil
}

func (d *FirestoreDocuments) AppendToUserRecordArray(ctx context.Context, accountID, field string, value any) error {
	_, err := d.col().Doc(accountID).Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.ArrayUnion(value)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return fmt.Errorf("append to %s: %w", field, err)
	}
	return nil
}

func (d *FirestoreDocuments) RemoveFromUserRecordArray(ctx context.Context, accountID, field string, value any) error {
	_, err := d.col().Doc(accountID).Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.ArrayRemove(value)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return fmt.Errorf("remove from %s: %w", field, err)
	}
	return nil
}
