package ports

import "context"

// ImageStorage persists uploaded meal photos and returns an externally
// reachable URL.
type ImageStorage interface {
	Save(ctx context.Context, data []byte, suggestedExtension string) (string, error)
}
