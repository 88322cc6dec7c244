// Package objects resolves stored image references to browsable URLs.
//
// Event, activity and profile records store either a full URL (external
// images) or an object key inside the public images bucket. Upload and
// resizing happen outside this service; the API only needs to hand the
// frontend something it can render.
package objects

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/gravadigital/conexa-api/internal/config"
	"github.com/gravadigital/conexa-api/internal/logger"
)

// Store wraps a MinIO client for one public bucket
type Store struct {
	client *minio.Client
	bucket string
	log    *log.Logger
}

// New creates a store from the configured endpoint and bucket
func New(cfg *config.Config) (*Store, error) {
	client, err := minio.New(cfg.Objects.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Objects.AccessKey, cfg.Objects.SecretKey, ""),
		Secure: cfg.Objects.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return &Store{
		client: client,
		bucket: cfg.Objects.Bucket,
		log:    logger.Objects(),
	}, nil
}

// PublicURL resolves an image reference to a browsable URL. Full URLs pass
// through untouched; object keys are resolved against the public bucket.
// Empty references stay empty.
func (s *Store) PublicURL(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}

	key := strings.TrimLeft(ref, "/")
	return s.client.EndpointURL().String() + "/" + s.bucket + "/" + key
}
