package ports

import "context"

// Player hands an opaque play URI to the external playback collaborator.
// The URI is passed through unchanged and never parsed.
type Player interface {
	Play(ctx context.Context, uri string) error
}
