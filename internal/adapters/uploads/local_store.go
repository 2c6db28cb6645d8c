package uploads

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"hydauction-listing-service/internal/config"
	"hydauction-listing-service/internal/domain/shared"

	"github.com/alitto/pond"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LocalStore writes uploaded files under a single directory and returns
// server-relative paths usable for later retrieval. Writes fan out on a
// bounded worker pool; results keep the submission order.
type LocalStore struct {
	dir        string
	publicPath string
	pool       *pond.WorkerPool
	logger     zerolog.Logger
}
type LocalStoreParams struct {
	// Dir is the filesystem directory files are written to
	Dir string
	// PublicPath is the server-relative prefix of returned paths
	PublicPath string
	Logger     zerolog.Logger
}

// NewLocalStore creates a new local file store, creating Dir if needed
func NewLocalStore(params LocalStoreParams) (*LocalStore, error) {
	if err := os.MkdirAll(params.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	pool := pond.New(
		config.UploadMaxWorkers,
		config.UploadMaxQueue,
		pond.Strategy(pond.Balanced()),
	)

	return &LocalStore{
		dir:        params.Dir,
		publicPath: params.PublicPath,
		pool:       pool,
		logger:     params.Logger.With().Str("component", "upload_store").Logger(),
	}, nil
}

// SaveAll stores every upload and returns one path per upload, in input order
func (store *LocalStore) SaveAll(ctx context.Context, uploads []shared.Upload) ([]string, error) {
	if len(uploads) == 0 {
		return nil, nil
	}

	paths := make([]string, len(uploads))
	group, _ := store.pool.GroupContext(ctx)

	for i, upload := range uploads {
		i, upload := i, upload
		group.Submit(func() error {
			stored, err := store.save(upload)
			if err != nil {
				return err
			}
			paths[i] = stored
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		store.logger.Error().Err(err).Int("uploads", len(uploads)).Msg("Failed to store uploads")
		return nil, err
	}

	return paths, nil
}

// save writes one upload under a fresh unguessable name, keeping the
// original extension
func (store *LocalStore) save(upload shared.Upload) (string, error) {
	src, err := upload.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload %q: %w", upload.Filename, err)
	}
	defer src.Close()

	name := uuid.New().String() + filepath.Ext(upload.Filename)

	dst, err := os.Create(filepath.Join(store.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	store.logger.Debug().
		Str("filename", upload.Filename).
		Str("stored_as", name).
		Msg("Upload stored")

	return path.Join(store.publicPath, name), nil
}

// Stop drains the worker pool
func (store *LocalStore) Stop() {
	store.pool.StopAndWait()
}
