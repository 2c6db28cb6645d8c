package app

import (
	"context"
	"fmt"
	"sync"

	"hydauction-listing-service/internal/domain/shared"

	"github.com/google/uuid"
)

// in-memory fakes for the outbound ports

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*shared.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*shared.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *shared.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*shared.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, shared.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*shared.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, shared.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*shared.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, shared.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*shared.Item
	order []uuid.UUID
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*shared.Item)}
}

func (r *fakeItemRepo) Create(ctx context.Context, item *shared.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *item
	r.items[item.ID] = &copied
	r.order = append(r.order, item.ID)
	return nil
}

func (r *fakeItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*shared.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, shared.ErrItemNotFound
}

func (r *fakeItemRepo) List(ctx context.Context) ([]*shared.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*shared.Item, 0, len(r.order))
	for _, id := range r.order {
		if item, ok := r.items[id]; ok {
			copied := *item
			items = append(items, &copied)
		}
	}
	return items, nil
}

func (r *fakeItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return shared.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeImageRepo struct {
	mu     sync.Mutex
	images map[uuid.UUID]*shared.Image
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{images: make(map[uuid.UUID]*shared.Image)}
}

func (r *fakeImageRepo) Create(ctx context.Context, image *shared.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *image
	r.images[image.ID] = &copied
	return nil
}

func (r *fakeImageRepo) List(ctx context.Context) ([]*shared.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	images := make([]*shared.Image, 0, len(r.images))
	for _, image := range r.images {
		copied := *image
		images = append(images, &copied)
	}
	return images, nil
}

func (r *fakeImageRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.images, id)
	}
	return nil
}

// fakeFileStore returns deterministic paths in input order
type fakeFileStore struct {
	saved []string
}

func (s *fakeFileStore) SaveAll(ctx context.Context, uploads []shared.Upload) ([]string, error) {
	paths := make([]string, len(uploads))
	for i, upload := range uploads {
		paths[i] = fmt.Sprintf("public/uploads/%d-%s", len(s.saved)+i, upload.Filename)
	}
	s.saved = append(s.saved, paths...)
	return paths, nil
}
