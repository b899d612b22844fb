package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/franciscosanchezn/gin-pizza-console/internal/client"
	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
)

var errBackend = errors.New("backend unavailable")

// fakeResource records every call a manager makes
type fakeResource[E, C, P any] struct {
	mu sync.Mutex

	items     []E
	listErr   error
	createErr error
	updateErr error
	deleteErr error
	// release, when set, blocks Create until it is closed
	release chan struct{}
	started chan struct{}

	listCalls int
	created   []C
	updated   []P
	updateIDs []int64
	deleted   []int64
}

func (f *fakeResource[E, C, P]) List(ctx context.Context) ([]E, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]E(nil), f.items...), nil
}

func (f *fakeResource[E, C, P]) Create(ctx context.Context, input C) (E, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero E
	f.created = append(f.created, input)
	return zero, f.createErr
}

func (f *fakeResource[E, C, P]) Update(ctx context.Context, id int64, patch P) (E, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero E
	f.updateIDs = append(f.updateIDs, id)
	f.updated = append(f.updated, patch)
	return zero, f.updateErr
}

func (f *fakeResource[E, C, P]) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeResource[E, C, P]) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created) + len(f.updated) + len(f.deleted)
}

// fakeImages records uploads and deletions in call order
type fakeImages struct {
	mu        sync.Mutex
	events    []string
	uploadErr error
	deleteErr error
	next      int
	// onDelete runs before a deletion is recorded
	onDelete func(ref string)
}

func (f *fakeImages) Upload(ctx context.Context, filename string, content io.Reader) (models.UploadedImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := io.ReadAll(content); err != nil {
		return models.UploadedImage{}, err
	}
	f.events = append(f.events, "upload:"+filename)
	if f.uploadErr != nil {
		return models.UploadedImage{}, f.uploadErr
	}
	f.next++
	name := fmt.Sprintf("new-%d.png", f.next)
	return models.UploadedImage{Filename: "dist/images/" + name, Path: "/images/" + name}, nil
}

func (f *fakeImages) Delete(ctx context.Context, ref string) error {
	if f.onDelete != nil {
		f.onDelete(ref)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, "delete:"+ref)
	return f.deleteErr
}

func (f *fakeImages) log() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func notFound() error {
	return &client.APIError{StatusCode: 404, Body: `{"code":"IMAGE_NOT_FOUND"}`}
}

// fakeLister returns a fixed list
type fakeLister[E any] struct {
	items []E
	err   error
}

func (f fakeLister[E]) List(ctx context.Context) ([]E, error) {
	return f.items, f.err
}
