// Package core holds the contracts shared by the user-facing surfaces.
package core

import "context"

// Frontend is a long-running surface that serves the movie listings to users,
// such as the Telegram bot.
type Frontend interface {
	// Start runs the frontend until ctx is canceled.
	Start(ctx context.Context) error

	// Stop releases the frontend's resources.
	Stop(ctx context.Context) error

	// SendMessage sends a plain text message to a user.
	SendMessage(ctx context.Context, userID string, message string) error

	// Name returns the frontend name, e.g. "telegram".
	Name() string
}
