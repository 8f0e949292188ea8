package services

import (
	"context"
	"errors"

	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
)

// InitFirebase builds a Firebase Admin app from a service account file.
// It returns a nil app when no credentials file is configured. The app
// keeps ctx for token refreshes, so its deadline is dropped.
func InitFirebase(ctx context.Context, credFile, projectID string) (*firebase.App, error) {
	if credFile == "" {
		return nil, nil
	}
	ctx = context.WithoutCancel(ctx)
	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}
	app, err := firebase.NewApp(ctx, cfg, option.WithCredentialsFile(credFile))
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, errors.New("firebase: app not created")
	}
	return app, nil
}
