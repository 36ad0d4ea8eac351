// internal/upstream/products.go
package upstream

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/abccorp/corpsite-web/internal/models"
)

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.doJSON(ctx, http.MethodGet, "/api/products", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct POSTs a new product; the API assigns the id.
func (c *Client) CreateProduct(ctx context.Context, token string, draft models.ProductDraft) (*models.Product, error) {
	var created models.Product
	if err := c.doJSON(ctx, http.MethodPost, "/api/products", token, draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct PUTs a whole replacement record for id.
func (c *Client) UpdateProduct(ctx context.Context, token, id string, draft models.ProductDraft) (*models.Product, error) {
	var updated models.Product
	if err := c.doJSON(ctx, http.MethodPut, "/api/products/"+id, token, draft, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes one product by id.
func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/products/"+id, token, nil, nil)
}

// Upload sends a file to the remote upload endpoint and returns the image
// reference the API assigned to it.
func (c *Client) Upload(ctx context.Context, token string, file FileUpload) (string, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", file.Filename)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var result struct {
		URL string `json:"url"`
	}
	if err := c.send(req, "/api/upload", token, &result); err != nil {
		return "", err
	}
	return result.URL, nil
}
