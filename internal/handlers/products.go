// internal/handlers/products.go
package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abccorp/corpsite-web/internal/catalog"
	"github.com/abccorp/corpsite-web/internal/i18n"
	"github.com/abccorp/corpsite-web/internal/models"
	"github.com/abccorp/corpsite-web/internal/session"
	"github.com/abccorp/corpsite-web/internal/upstream"
	"github.com/abccorp/corpsite-web/internal/utils"
)

// ProductHandler serves the public catalog page and the admin CRUD
// surface on top of the catalog store and mutation pipeline.
type ProductHandler struct {
	api      *upstream.Client
	session  *session.Store
	store    *catalog.Store
	pipeline *catalog.Pipeline
}

func NewProductHandler(api *upstream.Client, sess *session.Store, store *catalog.Store, pipeline *catalog.Pipeline) *ProductHandler {
	return &ProductHandler{api: api, session: sess, store: store, pipeline: pipeline}
}

type productForm struct {
	Name        string  `form:"name" validate:"required"`
	Description string  `form:"description" validate:"required"`
	Price       float64 `form:"price" validate:"gte=0"`
	Category    string  `form:"category"`
	Image       string  `form:"image"`
}

// ListProducts renders the public catalog: fetch on entry, then filter
// and sort locally from the query string.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.store.Refresh(c.Request.Context()); err != nil {
		logrus.WithError(err).Warn("Catalog refresh failed on page entry")
	}

	criteria := parseCriteria(c)
	doc := fetchSettingsDoc(c, h.api)
	notice, errMsg := flashFromQuery(c, lang)

	var staleNotice string
	if h.store.Stale() {
		staleNotice = i18n.T(lang, i18n.KeyProductListStale)
	}

	c.HTML(http.StatusOK, "products.html", gin.H{
		"Nav":         buildNav(c, h.session, doc),
		"Products":    h.store.Visible(criteria),
		"Criteria":    criteria,
		"StaleNotice": staleNotice,
		"Notice":      notice,
		"Error":       errMsg,
	})
}

// AdminProducts renders the management list, including bulk-selection
// state when bulk mode is on.
func (h *ProductHandler) AdminProducts(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.store.Refresh(c.Request.Context()); err != nil {
		logrus.WithError(err).Warn("Catalog refresh failed on admin page entry")
	}

	bulkMode := c.Query("bulk") == "1"
	if !bulkMode {
		// Leaving bulk mode abandons the pending selection.
		h.store.ClearSelection()
	}

	criteria := parseCriteria(c)
	doc := fetchSettingsDoc(c, h.api)
	notice, errMsg := flashFromQuery(c, lang)

	var staleNotice string
	if h.store.Stale() {
		staleNotice = i18n.T(lang, i18n.KeyProductListStale)
	}

	selected := make(map[string]bool)
	for _, id := range h.store.Selected() {
		selected[id] = true
	}

	c.HTML(http.StatusOK, "admin_products.html", gin.H{
		"Nav":         buildNav(c, h.session, doc),
		"Products":    h.store.Visible(criteria),
		"Criteria":    criteria,
		"StaleNotice": staleNotice,
		"Notice":      notice,
		"Error":       errMsg,
		"BulkMode":    bulkMode,
		"Selected":    selected,
		"Busy":        h.pipeline.Busy(),
	})
}

// CreateProduct handles the admin create form: multipart fields plus an
// optional image file that is uploaded before the save.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	draft, image, err := h.bindDraft(c, lang)
	if err != nil {
		redirectError(c, "/admin/products", err.Error())
		return
	}

	if err := h.pipeline.Create(c.Request.Context(), draft, image); err != nil {
		redirectError(c, "/admin/products", mutationMessage(lang, err))
		return
	}
	redirectNotice(c, "/admin/products", i18n.KeyProductCreated)
}

// UpdateProduct is a whole-record replace of one product.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id := c.Param("id")

	draft, image, err := h.bindDraft(c, lang)
	if err != nil {
		redirectError(c, "/admin/products", err.Error())
		return
	}

	if err := h.pipeline.Update(c.Request.Context(), id, draft, image); err != nil {
		redirectError(c, "/admin/products", mutationMessage(lang, err))
		return
	}
	redirectNotice(c, "/admin/products", i18n.KeyProductUpdated)
}

// DeleteProduct removes a single product. The confirmation dialog lives
// in the template; by the time this handler runs the user already said
// yes.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.pipeline.Remove(c.Request.Context(), c.Param("id")); err != nil {
		redirectError(c, "/admin/products", mutationMessage(lang, err))
		return
	}
	redirectNotice(c, "/admin/products", i18n.KeyProductDeleted)
}

// BulkDelete removes every currently selected product in one shot.
func (h *ProductHandler) BulkDelete(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	ids := h.store.Selected()
	if len(ids) == 0 {
		redirectNotice(c, "/admin/products", i18n.KeyProductBulkDeleted)
		return
	}

	if err := h.pipeline.BulkRemove(c.Request.Context(), ids); err != nil {
		redirectError(c, "/admin/products?bulk=1", mutationMessage(lang, err))
		return
	}
	redirectNotice(c, "/admin/products", i18n.KeyProductBulkDeleted)
}

// ToggleSelect flips one product's membership in the bulk-selection set.
// Called from the bulk-mode checkboxes via fetch, so it answers JSON.
func (h *ProductHandler) ToggleSelect(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.ToggleSelect(id); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductNotFound), nil)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"id":       id,
		"selected": h.store.IsSelected(id),
		"count":    len(h.store.Selected()),
	})
}

// ClearSelection empties the bulk-selection set, as happens when bulk
// mode is switched off.
func (h *ProductHandler) ClearSelection(c *gin.Context) {
	h.store.ClearSelection()
	utils.SuccessResponse(c, gin.H{"count": 0})
}

// bindDraft assembles a ProductDraft from the admin form. A product must
// end up with an image: either a freshly chosen file or the reference it
// already had.
func (h *ProductHandler) bindDraft(c *gin.Context, lang string) (models.ProductDraft, *upstream.FileUpload, error) {
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		return models.ProductDraft{}, nil, errors.New(i18n.T(lang, i18n.KeyValidationInvalid, "input"))
	}
	if err := utils.ValidateStruct(form); err != nil {
		errs := utils.GetValidationErrors(err)
		if len(errs) > 0 {
			return models.ProductDraft{}, nil, errors.New(errs[0].Message)
		}
		return models.ProductDraft{}, nil, errors.New(i18n.T(lang, i18n.KeyValidationInvalid, "input"))
	}

	image, err := readFormFile(c, "image_file")
	if err != nil {
		return models.ProductDraft{}, nil, errors.New(i18n.T(lang, i18n.KeyValidationInvalid, "input"))
	}
	if image == nil && form.Image == "" {
		return models.ProductDraft{}, nil, errors.New(i18n.T(lang, i18n.KeyProductImageRequired))
	}

	draft := models.ProductDraft{
		Name:           form.Name,
		Description:    form.Description,
		Price:          form.Price,
		Image:          form.Image,
		Category:       form.Category,
		Specifications: parseSpecifications(c),
	}
	return draft, image, nil
}

// parseCriteria turns the query string into filter/sort state. Anything
// absent or unparsable falls back to the default.
func parseCriteria(c *gin.Context) catalog.Criteria {
	criteria := catalog.DefaultCriteria()
	criteria.SearchText = c.Query("q")

	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		criteria.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		criteria.MaxPrice = &v
	}
	if c.Query("sort") == string(catalog.SortByPrice) {
		criteria.SortField = catalog.SortByPrice
	}
	if c.Query("order") == string(catalog.Descending) {
		criteria.SortDirection = catalog.Descending
	}
	return criteria
}

// parseSpecifications reads the paired spec_key/spec_value form arrays.
// Rows with an empty key are dropped.
func parseSpecifications(c *gin.Context) map[string]string {
	keys := c.PostFormArray("spec_key")
	values := c.PostFormArray("spec_value")

	specs := make(map[string]string)
	for i, key := range keys {
		if key == "" || i >= len(values) {
			continue
		}
		specs[key] = values[i]
	}
	if len(specs) == 0 {
		return nil
	}
	return specs
}

// readFormFile reads an optional multipart file field into memory.
// An absent field is not an error.
func readFormFile(c *gin.Context, field string) (*upstream.FileUpload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return fileUploadFromHeader(header)
}

func fileUploadFromHeader(header *multipart.FileHeader) (*upstream.FileUpload, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &upstream.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// mutationMessage maps a pipeline error onto the user-facing string for
// the flash banner.
func mutationMessage(lang string, err error) string {
	var uploadErr *catalog.UploadError
	var bulkErr *catalog.BulkError
	var reqErr *upstream.RequestError

	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		return i18n.T(lang, i18n.KeyAdminAccessDenied)
	case errors.Is(err, catalog.ErrBusy):
		return i18n.T(lang, i18n.KeyAdminBusy)
	case errors.As(err, &uploadErr):
		return i18n.T(lang, i18n.KeyProductUploadFailed)
	case errors.As(err, &bulkErr):
		return i18n.T(lang, i18n.KeyProductBulkPartial)
	case errors.As(err, &reqErr):
		return reqErr.DisplayMessage(i18n.T(lang, i18n.KeyProductSaveFailed))
	default:
		return i18n.T(lang, i18n.KeyProductSaveFailed)
	}
}
