// internal/models/product.go
package models

import "encoding/json"

// Product is one catalog entry as the upstream API stores it. The id is
// assigned by the API and is never generated locally.
type Product struct {
	ID             string            `json:"_id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	Image          string            `json:"image"`
	Category       string            `json:"category,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

// ProductDraft is the body of a create or update call: a whole product
// minus the server-assigned id. Updates are full replaces, not patches.
type ProductDraft struct {
	Name           string            `json:"name" validate:"required"`
	Description    string            `json:"description" validate:"required"`
	Price          float64           `json:"price" validate:"gte=0"`
	Image          string            `json:"image" validate:"required"`
	Category       string            `json:"category,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

// Some upstream deployments key products by "id" instead of "_id".
// Accept either on reads.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	aux := struct {
		*alias
		AltID string `json:"id"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = aux.AltID
	}
	return nil
}
