package views

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/logging"
)

type DocumentsAPI interface {
	ListDocuments(ctx context.Context) ([]models.Document, error)
	UploadDocument(ctx context.Context, name string, r io.Reader) (*models.Document, error)
	DeleteDocument(ctx context.Context, id models.ID) error
}

// Documents is the document list. It always reflects the last successful
// fetch; uploads and deletes refetch instead of editing the list locally.
type Documents struct {
	api DocumentsAPI
	log logging.Logger

	mu     sync.RWMutex
	docs   []models.Document
	loaded bool

	loading   busy
	uploading busy
	deleting  busy
}

func NewDocuments(api DocumentsAPI, log logging.Logger) *Documents {
	if log == nil {
		log = logging.Discard()
	}
	return &Documents{api: api, log: log.With("view", "documents")}
}

func (v *Documents) Load(ctx context.Context) error {
	if err := v.loading.enter(); err != nil {
		return err
	}
	defer v.loading.leave()

	docs, err := v.api.ListDocuments(ctx)
	if err != nil {
		return fail(err, "failed to load documents")
	}

	v.mu.Lock()
	v.docs = docs
	v.loaded = true
	v.mu.Unlock()

	v.log.Debug(ctx, "documents loaded", "count", len(docs))
	return nil
}

// Documents returns a copy of the current list.
func (v *Documents) Documents() []models.Document {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]models.Document, len(v.docs))
	copy(out, v.docs)
	return out
}

func (v *Documents) Loaded() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loaded
}

// Filter narrows the current list by a case-insensitive match on title or
// filename. It never goes to the server.
func (v *Documents) Filter(term string) []models.Document {
	return models.FilterDocuments(v.Documents(), term)
}

func (v *Documents) Find(id models.ID) (models.Document, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, d := range v.docs {
		if d.ID == id {
			return d, true
		}
	}
	return models.Document{}, false
}

// Upload sends the selected file and refetches the list.
func (v *Documents) Upload(ctx context.Context, name string, r io.Reader) error {
	if strings.TrimSpace(name) == "" || r == nil {
		return ErrNoFileSelected
	}
	if err := v.uploading.enter(); err != nil {
		return err
	}
	defer v.uploading.leave()

	doc, err := v.api.UploadDocument(ctx, name, r)
	if err != nil {
		return fail(err, "failed to upload document")
	}
	v.log.Info(ctx, "document uploaded", "id", doc.ID, "filename", doc.Filename)

	return v.Load(ctx)
}

// Delete removes a document once confirm agrees, then refetches. confirm
// receives the document as currently listed.
func (v *Documents) Delete(ctx context.Context, id models.ID, confirm func(models.Document) bool) error {
	doc, ok := v.Find(id)
	if !ok {
		return ErrUnknownDocument
	}
	if confirm == nil || !confirm(doc) {
		return ErrDeleteCancelled
	}
	if err := v.deleting.enter(); err != nil {
		return err
	}
	defer v.deleting.leave()

	if err := v.api.DeleteDocument(ctx, id); err != nil {
		return fail(err, "failed to delete document")
	}
	v.log.Info(ctx, "document deleted", "id", id)

	return v.Load(ctx)
}

// Busy reports whether any operation of the view is in flight.
func (v *Documents) Busy() bool {
	return v.loading.active() || v.uploading.active() || v.deleting.active()
}
