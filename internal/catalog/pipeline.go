// internal/catalog/pipeline.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/abccorp/corpsite-web/internal/models"
	"github.com/abccorp/corpsite-web/internal/session"
	"github.com/abccorp/corpsite-web/internal/upstream"
)

// ErrBusy is returned when a mutation is requested while another one is
// still in flight. There is no de-duplication below this layer, so the
// busy flag is it.
var ErrBusy = errors.New("catalog operation already in flight")

// UploadError marks a failed image upload, distinct from a failed save.
// When it occurs the create/update call was never issued.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return fmt.Sprintf("image upload failed: %v", e.Err) }
func (e *UploadError) Unwrap() error { return e.Err }

// BulkError is the single aggregate signal of a partial bulk failure. The
// deletes that succeeded are not rolled back and the failing ids are not
// reported individually; the trailing refresh already resynchronized the
// store with whatever the server actually holds.
type BulkError struct {
	Failed int
	Total  int
}

func (e *BulkError) Error() string {
	return fmt.Sprintf("bulk delete: %d of %d deletes failed", e.Failed, e.Total)
}

// Pipeline performs catalog writes against the remote API. Every write
// needs an admin session and, on success, is followed by a full Refresh of
// the owning store rather than any local patching — the refetch is the
// consistency mechanism.
type Pipeline struct {
	api     *upstream.Client
	session *session.Store
	store   *Store

	mu   sync.Mutex
	busy bool
}

func NewPipeline(api *upstream.Client, sess *session.Store, store *Store) *Pipeline {
	return &Pipeline{api: api, session: sess, store: store}
}

// Busy reports whether a mutation is currently in flight, so the
// presentation layer can disable its triggering control.
func (p *Pipeline) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}

// Create uploads a newly chosen image (when present), substitutes the
// returned reference into the draft, POSTs it, and refreshes the store.
func (p *Pipeline) Create(ctx context.Context, draft models.ProductDraft, image *upstream.FileUpload) error {
	token, ok := p.session.Token()
	if !ok {
		return session.ErrNotAuthenticated
	}
	if err := p.begin(); err != nil {
		return err
	}
	defer p.end()

	draft, err := p.resolveImage(ctx, token, draft, image)
	if err != nil {
		return err
	}

	if _, err := p.api.CreateProduct(ctx, token, draft); err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	p.resync(ctx)
	return nil
}

// Update is a whole-record replace keyed by id, with the same upload-first
// and refresh-after behavior as Create.
func (p *Pipeline) Update(ctx context.Context, id string, draft models.ProductDraft, image *upstream.FileUpload) error {
	token, ok := p.session.Token()
	if !ok {
		return session.ErrNotAuthenticated
	}
	if err := p.begin(); err != nil {
		return err
	}
	defer p.end()

	draft, err := p.resolveImage(ctx, token, draft, image)
	if err != nil {
		return err
	}

	if _, err := p.api.UpdateProduct(ctx, token, id, draft); err != nil {
		return fmt.Errorf("update product %s: %w", id, err)
	}

	p.resync(ctx)
	return nil
}

// Remove deletes one product. Asking the user for a yes/no confirmation
// first is the presentation layer's job, not enforced here.
func (p *Pipeline) Remove(ctx context.Context, id string) error {
	token, ok := p.session.Token()
	if !ok {
		return session.ErrNotAuthenticated
	}
	if err := p.begin(); err != nil {
		return err
	}
	defer p.end()

	if err := p.api.DeleteProduct(ctx, token, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}

	p.resync(ctx)
	return nil
}

// BulkRemove fires one delete per id, all concurrently, and waits for
// every attempt to settle. Exactly one refresh follows, whatever the
// per-id outcomes were; a partial failure surfaces as one aggregate
// BulkError. This mirrors the reference behavior and is tolerance of
// partial failure, not a transaction.
func (p *Pipeline) BulkRemove(ctx context.Context, ids []string) error {
	token, ok := p.session.Token()
	if !ok {
		return session.ErrNotAuthenticated
	}
	if err := p.begin(); err != nil {
		return err
	}
	defer p.end()

	var failed int32
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := p.api.DeleteProduct(ctx, token, id); err != nil {
				atomic.AddInt32(&failed, 1)
				logrus.WithError(err).WithField("product_id", id).Warn("Bulk delete attempt failed")
			}
		}(id)
	}
	wg.Wait()

	p.resync(ctx)

	if n := int(atomic.LoadInt32(&failed)); n > 0 {
		return &BulkError{Failed: n, Total: len(ids)}
	}
	p.store.ClearSelection()
	return nil
}

// resolveImage runs the upload-first step: a new local file must become a
// server-side reference before the product payload may mention it. If the
// upload fails the save is never attempted.
func (p *Pipeline) resolveImage(ctx context.Context, token string, draft models.ProductDraft, image *upstream.FileUpload) (models.ProductDraft, error) {
	if image == nil {
		return draft, nil
	}
	url, err := p.api.Upload(ctx, token, *image)
	if err != nil {
		return draft, &UploadError{Err: err}
	}
	draft.Image = url
	return draft, nil
}

// resync reloads the owning list after a successful write. A failed
// refresh leaves the store stale-flagged; the write itself still
// succeeded, so it is not reported as the operation's error.
func (p *Pipeline) resync(ctx context.Context) {
	if err := p.store.Refresh(ctx); err != nil {
		logrus.WithError(err).Warn("Catalog refresh after mutation failed")
	}
}

func (p *Pipeline) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.busy {
		return ErrBusy
	}
	p.busy = true
	return nil
}

func (p *Pipeline) end() {
	p.mu.Lock()
	p.busy = false
	p.mu.Unlock()
}
