// internal/settings/validate.go
package settings

import "github.com/abccorp/corpsite-web/internal/upstream"

// AllowedLogoTypes is the MIME allow-list for logo uploads.
var AllowedLogoTypes = []string{
	"image/svg+xml",
	"image/x-icon",
	"image/png",
	"image/jpeg",
	"image/jpg",
	"image/gif",
	"image/webp",
}

// MaxLogoSize is the logo size ceiling in bytes.
const MaxLogoSize = 2 * 1024 * 1024

// Validation reasons, so callers can distinguish what was violated.
const (
	ReasonType = "type"
	ReasonSize = "size"
)

// ValidationError is a client-side rejection: it carries a specific,
// user-displayable message and guarantees no network call was made.
type ValidationError struct {
	Field   string
	Reason  string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ValidateLogo checks a chosen logo file against the allow-list and size
// ceiling, returning a type- or size-specific error.
func ValidateLogo(file upstream.FileUpload) error {
	allowed := false
	for _, t := range AllowedLogoTypes {
		if file.ContentType == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return &ValidationError{
			Field:   "logo",
			Reason:  ReasonType,
			Message: "Invalid file type. Please upload an SVG, ICO, PNG, JPEG, GIF, or WebP file.",
		}
	}

	if int64(len(file.Data)) > MaxLogoSize {
		return &ValidationError{
			Field:   "logo",
			Reason:  ReasonSize,
			Message: "Logo file is too large. Maximum size is 2MB.",
		}
	}

	return nil
}
