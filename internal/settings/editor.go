// internal/settings/editor.go
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/abccorp/corpsite-web/internal/models"
	"github.com/abccorp/corpsite-web/internal/session"
	"github.com/abccorp/corpsite-web/internal/upstream"
)

// ErrBusy is returned when a submit is requested while one is still in
// flight.
var ErrBusy = errors.New("settings submit already in flight")

// Editor mirrors the remote settings document: fetched once on screen
// entry, edited leaf by leaf, and written back as one full replacement
// together with any newly chosen image files.
type Editor struct {
	api     *upstream.Client
	session *session.Store

	mu          sync.Mutex
	doc         models.Settings
	logoFile    *upstream.FileUpload
	landingFile *upstream.FileUpload
	busy        bool
}

func NewEditor(api *upstream.Client, sess *session.Store) *Editor {
	return &Editor{
		api:     api,
		session: sess,
		doc:     models.DefaultSettings(),
	}
}

// Load fetches the document and deep-merges it into defaulted local state:
// a field the server response omits keeps its local default instead of
// going missing.
func (e *Editor) Load(ctx context.Context) error {
	raw, err := e.api.FetchSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	doc := models.DefaultSettings()
	if err := doc.Merge(raw); err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	e.mu.Lock()
	e.doc = doc
	e.mu.Unlock()
	return nil
}

// Document returns a copy of the current editable state.
func (e *Editor) Document() models.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Clone()
}

// SetField updates exactly one leaf, named by a dotted path such as
// "landingPageTitle.en", "sections.workingHours.sunday.vi" or
// "notification.isActive", without disturbing sibling fields.
func (e *Editor) SetField(path string, value interface{}) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if path == "notification.isActive" {
		active, ok := value.(bool)
		if !ok {
			return fmt.Errorf("settings field %s expects a bool", path)
		}
		e.doc.Notification.IsActive = active
		return nil
	}

	dot := strings.LastIndex(path, ".")
	if dot <= 0 {
		return fmt.Errorf("unknown settings field %q", path)
	}
	prefix, lang := path[:dot], path[dot+1:]

	leaf, ok := e.doc.LocalizedField(prefix)
	if !ok {
		return fmt.Errorf("unknown settings field %q", path)
	}
	if !supportedLang(lang) {
		return fmt.Errorf("unsupported language %q in settings field %q", lang, path)
	}

	text, ok := value.(string)
	if !ok {
		return fmt.Errorf("settings field %s expects a string", path)
	}
	leaf[lang] = text
	return nil
}

// AttachLogo validates and stages a newly chosen logo file. Violations
// block locally with a type- or size-specific message and never reach the
// network.
func (e *Editor) AttachLogo(file upstream.FileUpload) error {
	if err := ValidateLogo(file); err != nil {
		return err
	}
	e.mu.Lock()
	e.logoFile = &file
	e.mu.Unlock()
	return nil
}

// AttachLandingImage stages a newly chosen landing page image.
func (e *Editor) AttachLandingImage(file upstream.FileUpload) {
	e.mu.Lock()
	e.landingFile = &file
	e.mu.Unlock()
}

// PendingFiles reports which image selections are staged for the next
// submit.
func (e *Editor) PendingFiles() (logo, landing bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.logoFile != nil, e.landingFile != nil
}

// Busy reports whether a submit is in flight.
func (e *Editor) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

// Submit PUTs the whole document — serialized bilingual structures, the
// complete notification record, and any staged files. Success clears the
// two pending file selections; failure leaves everything staged.
func (e *Editor) Submit(ctx context.Context) error {
	token, ok := e.session.Token()
	if !ok {
		return session.ErrNotAuthenticated
	}

	e.mu.Lock()
	if e.busy {
		e.mu.Unlock()
		return ErrBusy
	}
	e.busy = true
	doc := e.doc.Clone()
	form := upstream.SettingsForm{
		Logo:                   e.logoFile,
		LandingPageImage:       e.landingFile,
		LandingPageTitle:       doc.LandingPageTitle,
		LandingPageDescription: doc.LandingPageDescription,
		Sections:               doc.Sections,
		Notification:           doc.Notification,
	}
	e.mu.Unlock()

	err := e.api.PutSettings(ctx, token, form)

	e.mu.Lock()
	e.busy = false
	if err == nil {
		e.logoFile = nil
		e.landingFile = nil
	}
	e.mu.Unlock()

	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

func supportedLang(lang string) bool {
	for _, l := range models.SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}
