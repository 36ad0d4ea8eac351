// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Navigation
	KeyNavHome      = "nav.home"
	KeyNavProducts  = "nav.products"
	KeyNavShowcases = "nav.showcases"
	KeyNavLogin     = "nav.login"
	KeyNavLogout    = "nav.logout"
	KeyNavAdmin     = "nav.admin"

	// Authentication
	KeyAuthLoginSuccess = "auth.login_success"
	KeyAuthLoginFailed  = "auth.login_failed"
	KeyAuthSetupDone    = "auth.setup_done"
	KeyAuthSetupFailed  = "auth.setup_failed"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"
	KeyAdminBusy         = "admin.operation_in_flight"

	// Products
	KeyProductCreated       = "product.created"
	KeyProductUpdated       = "product.updated"
	KeyProductDeleted       = "product.deleted"
	KeyProductNotFound      = "product.not_found"
	KeyProductSaveFailed    = "product.save_failed"
	KeyProductUploadFailed  = "product.upload_failed"
	KeyProductBulkDeleted   = "product.bulk_deleted"
	KeyProductBulkPartial   = "product.bulk_partial_failure"
	KeyProductListStale     = "product.list_stale"
	KeyProductImageRequired = "product.image_required"

	// Settings
	KeySettingsUpdated      = "settings.updated"
	KeySettingsUpdateFailed = "settings.update_failed"
	KeySettingsLoadFailed   = "settings.load_failed"

	// Validation
	KeyValidationInvalid = "validation.invalid"
)
