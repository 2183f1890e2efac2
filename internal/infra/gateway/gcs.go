package gateway

import (
	"context"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
)

const defaultPublicBaseURL = "https://storage.googleapis.com"

// GCSStorage writes uploads into a single Cloud Storage bucket.
type GCSStorage struct {
	client        *storage.Client
	bucket        string
	publicBaseURL string
}

func NewGCSStorage(client *storage.Client, bucket, publicBaseURL string) *GCSStorage {
	return &GCSStorage{
		client:        client,
		bucket:        bucket,
		publicBaseURL: publicBaseURL,
	}
}

func (g *GCSStorage) Put(ctx context.Context, object, contentType string, body io.Reader) (string, error) {
	if g.bucket == "" {
		return "", errors.New("storage bucket is not configured")
	}

	w := g.client.Bucket(g.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=3600"

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", errors.Wrap(err, "failed to write object")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize object")
	}

	return PublicURL(g.publicBaseURL, g.bucket, object), nil
}

// PublicURL returns the URL an object is served from. With an empty base the
// default storage host is used and the bucket becomes the first path segment.
func PublicURL(base, bucket, object string) string {
	if base == "" {
		return defaultPublicBaseURL + "/" + bucket + "/" + object
	}
	return strings.TrimRight(base, "/") + "/" + object
}
