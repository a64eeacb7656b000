package billing

import (
	"context"
	"net/http"
	"net/url"

	"github.com/medledger/medledger-go/money"
)

// BillablesService manages the catalog of billable items.
type BillablesService struct {
	client *Client
}

// CreateBillableRequest adds a catalog item.
type CreateBillableRequest struct {
	ItemCode    string        `json:"item_code,omitempty"`
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description,omitempty"`
	Category    string        `json:"category" validate:"required"`
	UnitPrice   money.Amount  `json:"unit_price" validate:"min=0"`
	TaxRate     money.Percent `json:"tax_rate" validate:"min=0,max=10000"`
}

// UpdateBillableRequest carries a partial catalog item update.
type UpdateBillableRequest struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Category    *string        `json:"category,omitempty"`
	UnitPrice   *money.Amount  `json:"unit_price,omitempty" validate:"omitempty,min=0"`
	TaxRate     *money.Percent `json:"tax_rate,omitempty" validate:"omitempty,min=0,max=10000"`
	IsActive    *bool          `json:"is_active,omitempty"`
}

// BillableListOptions filters catalog listings.
type BillableListOptions struct {
	Category string
	Search   string
}

// List returns catalog items matching the given filters.
func (s *BillablesService) List(ctx context.Context, opts BillableListOptions) ([]BillableItem, error) {
	query := url.Values{}
	if opts.Category != "" {
		query.Set("category", opts.Category)
	}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}
	var items []BillableItem
	if err := s.client.do(ctx, http.MethodGet, "/billables", query, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns one catalog item by id.
func (s *BillablesService) Get(ctx context.Context, id string) (*BillableItem, error) {
	var item BillableItem
	if err := s.client.do(ctx, http.MethodGet, "/billables/"+id, nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Categories returns the distinct catalog categories.
func (s *BillablesService) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := s.client.do(ctx, http.MethodGet, "/billables/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Create adds a catalog item.
func (s *BillablesService) Create(ctx context.Context, req CreateBillableRequest) (*BillableItem, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}
	var item BillableItem
	if err := s.client.do(ctx, http.MethodPost, "/billables", nil, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies a partial update to a catalog item.
func (s *BillablesService) Update(ctx context.Context, id string, req UpdateBillableRequest) (*BillableItem, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}
	var item BillableItem
	if err := s.client.do(ctx, http.MethodPut, "/billables/"+id, nil, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes a catalog item.
func (s *BillablesService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/billables/"+id, nil, nil, nil)
}
