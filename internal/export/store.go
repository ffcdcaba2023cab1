package export

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// ObjectStore abstracts a flat key/value blob store for catalog uploads.
type ObjectStore interface {
	// List returns the keys under prefix.
	List(ctx context.Context, prefix string) ([]string, error)
	// Upload stores data under key, replacing any existing object.
	Upload(ctx context.Context, key string, data []byte) error
}

// Uploader pushes rendered catalogs to an object store.
type Uploader struct {
	store  ObjectStore
	prefix string
	logger *log.Logger
}

// NewUploader creates an uploader writing keys under prefix.
func NewUploader(store ObjectStore, prefix string, logger *log.Logger) *Uploader {
	if logger == nil {
		logger = log.Default()
	}
	return &Uploader{store: store, prefix: prefix, logger: logger}
}

// UploadCatalogs uploads each catalog as both JSON and Markdown objects,
// keyed <prefix>/<kind>.json and <prefix>/<kind>.md. It returns the keys
// written.
func (u *Uploader) UploadCatalogs(ctx context.Context, catalogs []Catalog, now time.Time) ([]string, error) {
	var keys []string
	for _, catalog := range catalogs {
		jsonKey := fmt.Sprintf("%s/%s.json", u.prefix, catalog.Kind)
		data, err := marshalCatalog(catalog)
		if err != nil {
			return keys, err
		}
		if err := u.store.Upload(ctx, jsonKey, data); err != nil {
			return keys, fmt.Errorf("uploading %s: %w", jsonKey, err)
		}
		keys = append(keys, jsonKey)

		mdKey := fmt.Sprintf("%s/%s.md", u.prefix, catalog.Kind)
		if err := u.store.Upload(ctx, mdKey, []byte(FormatMarkdown(catalog, now))); err != nil {
			return keys, fmt.Errorf("uploading %s: %w", mdKey, err)
		}
		keys = append(keys, mdKey)

		u.logger.Debug("uploaded catalog", "kind", catalog.Kind, "items", len(catalog.Items))
	}
	return keys, nil
}
