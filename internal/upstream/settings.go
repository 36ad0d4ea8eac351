// internal/upstream/settings.go
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/abccorp/corpsite-web/internal/models"
)

// SettingsForm is the full-document replacement payload for PUT
// /api/settings: the complete serialized structures plus any newly chosen
// image files.
type SettingsForm struct {
	Logo             *FileUpload
	LandingPageImage *FileUpload

	LandingPageTitle       models.LocalizedText
	LandingPageDescription models.LocalizedText
	Sections               models.Sections
	Notification           models.Notification
}

// FetchSettings returns the raw settings document so the caller can merge
// it field by field into a defaulted local copy.
func (c *Client) FetchSettings(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/settings", nil)
	if err != nil {
		return nil, fmt.Errorf("build settings request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Op: "GET /api/settings", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{Op: "GET /api/settings", Status: resp.StatusCode, Message: serverMessage(resp.Body)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Op: "GET /api/settings", Err: err}
	}
	return raw, nil
}

// PutSettings replaces the settings document. The bilingual structures and
// the notification record are always serialized whole, both languages and
// the isActive flag included, even when empty.
func (c *Client) PutSettings(ctx context.Context, token string, form SettingsForm) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if form.Logo != nil {
		if err := writeFilePart(mw, "logo", form.Logo); err != nil {
			return err
		}
	}
	if form.LandingPageImage != nil {
		if err := writeFilePart(mw, "landingPageImage", form.LandingPageImage); err != nil {
			return err
		}
	}

	fields := map[string]interface{}{
		"landingPageTitle":       form.LandingPageTitle,
		"landingPageDescription": form.LandingPageDescription,
		"sections":               form.Sections,
		"notification":           form.Notification,
	}
	for name, value := range fields {
		serialized, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("serialize settings field %s: %w", name, err)
		}
		if err := mw.WriteField(name, string(serialized)); err != nil {
			return fmt.Errorf("build settings form: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("build settings form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/api/settings", &body)
	if err != nil {
		return fmt.Errorf("build settings request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.send(req, "/api/settings", token, nil)
}

func writeFilePart(mw *multipart.Writer, field string, file *FileUpload) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`,
		field, escapeQuotes(file.Filename)))
	if file.ContentType != "" {
		header.Set("Content-Type", file.ContentType)
	}

	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("build settings form: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return fmt.Errorf("build settings form: %w", err)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
