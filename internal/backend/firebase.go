package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"frylyle/internal/common/config"
)

// Firebase owns the external clients: admin app, auth, Firestore and GCS.
// Close-managed by the caller.
type Firebase struct {
	App       *firebase.App
	Auth      *fbauth.Client
	Firestore *firestore.Client
	Storage   *gcs.Client

	cfg config.Firebase
}

// NewFirebase initializes all clients. A credentials file is optional;
// without one the clients fall back to Application Default Credentials.
func NewFirebase(ctx context.Context, cfg config.Firebase) (*Firebase, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("firebase.project_id is required")
	}
	var opts []option.ClientOption
	if cred := strings.TrimSpace(cfg.CredentialsFile); cred != "" {
		opts = append(opts, option.WithCredentialsFile(cred))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	fsClient, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	gcsClient, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		fsClient.Close()
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &Firebase{App: app, Auth: authClient, Firestore: fsClient, Storage: gcsClient, cfg: cfg}, nil
}

func (f *Firebase) Close() {
	if f == nil {
		return
	}
	if f.Firestore != nil {
		_ = f.Firestore.Close()
	}
	if f.Storage != nil {
		_ = f.Storage.Close()
	}
}

// Identity returns the auth surface backed by this app.
func (f *Firebase) Identity() *FirebaseIdentity {
	return newFirebaseIdentity(f.Auth, f.cfg.APIKey)
}

// Documents returns the clients-collection record store.
func (f *Firebase) Documents() *FirestoreDocuments {
	return NewFirestoreDocuments(f.Firestore)
}

// Objects returns the upload bucket.
func (f *Firebase) Objects() *BucketObjects {
	return NewBucketObjects(f.Storage, f.cfg.Bucket)
}
