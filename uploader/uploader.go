// Package uploader abstracts the asset host that stores user images.
// Clients submit images as base64 data URLs; an Uploader returns a
// servable URL or fails the whole operation.
package uploader

import "context"

type Uploader interface {
	Upload(ctx context.Context, dataURL string) (string, error)
}
