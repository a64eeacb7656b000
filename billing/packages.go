package billing

import (
	"context"
	"net/http"

	"github.com/medledger/medledger-go/money"
)

// PackagesService manages bundled catalog packages.
type PackagesService struct {
	client *Client
}

// PackageItemInput references a billable item inside a package payload.
type PackageItemInput struct {
	BillableItemID string `json:"billable_item_id" validate:"required"`
	Quantity       int    `json:"quantity" validate:"required,gt=0"`
}

// CreatePackageRequest creates a package with its item list.
type CreatePackageRequest struct {
	PackageCode string             `json:"package_code,omitempty"`
	Name        string             `json:"name" validate:"required"`
	Description string             `json:"description,omitempty"`
	PricingType PricingType        `json:"pricing_type" validate:"required,oneof=fixed itemized"`
	FixedPrice  money.Amount       `json:"fixed_price,omitempty" validate:"min=0"`
	Items       []PackageItemInput `json:"items,omitempty" validate:"dive"`
}

// UpdatePackageRequest carries a partial package update. A non-nil Items
// slice replaces the package contents wholesale.
type UpdatePackageRequest struct {
	Name        *string            `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	PricingType *PricingType       `json:"pricing_type,omitempty" validate:"omitempty,oneof=fixed itemized"`
	FixedPrice  *money.Amount      `json:"fixed_price,omitempty" validate:"omitempty,min=0"`
	IsActive    *bool              `json:"is_active,omitempty"`
	Items       []PackageItemInput `json:"items,omitempty" validate:"dive"`
}

// List returns all packages.
func (s *PackagesService) List(ctx context.Context) ([]Package, error) {
	var packages []Package
	if err := s.client.do(ctx, http.MethodGet, "/packages", nil, nil, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

// Get returns one package with its items.
func (s *PackagesService) Get(ctx context.Context, id string) (*Package, error) {
	var pkg Package
	if err := s.client.do(ctx, http.MethodGet, "/packages/"+id, nil, nil, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// Create adds a package.
func (s *PackagesService) Create(ctx context.Context, req CreatePackageRequest) (*Package, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}
	var pkg Package
	if err := s.client.do(ctx, http.MethodPost, "/packages", nil, req, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// Update applies a partial update to a package.
func (s *PackagesService) Update(ctx context.Context, id string, req UpdatePackageRequest) (*Package, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}
	var pkg Package
	if err := s.client.do(ctx, http.MethodPut, "/packages/"+id, nil, req, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// Delete removes a package.
func (s *PackagesService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/packages/"+id, nil, nil, nil)
}
