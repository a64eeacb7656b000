package billing

import (
	"context"
	"net/http"
)

// TreatmentsService manages named composites of billables and packages.
type TreatmentsService struct {
	client *Client
}

// TreatmentItemInput references either a billable item or a package.
// Exactly one of the two ids must be set.
type TreatmentItemInput struct {
	BillableItemID string `json:"billable_item_id,omitempty" validate:"required_without=PackageID,excluded_with=PackageID"`
	PackageID      string `json:"package_id,omitempty" validate:"required_without=BillableItemID"`
	Quantity       int    `json:"quantity" validate:"required,gt=0"`
}

// CreateTreatmentRequest creates a treatment with its item list.
type CreateTreatmentRequest struct {
	TreatmentCode string               `json:"treatment_code,omitempty"`
	Name          string               `json:"name" validate:"required"`
	Description   string               `json:"description,omitempty"`
	Items         []TreatmentItemInput `json:"items,omitempty" validate:"dive"`
}

// UpdateTreatmentRequest carries a partial treatment update. A non-nil
// Items slice replaces the treatment contents wholesale.
type UpdateTreatmentRequest struct {
	Name        *string              `json:"name,omitempty"`
	Description *string              `json:"description,omitempty"`
	IsActive    *bool                `json:"is_active,omitempty"`
	Items       []TreatmentItemInput `json:"items,omitempty" validate:"dive"`
}

// List returns all treatments.
func (s *TreatmentsService) List(ctx context.Context) ([]Treatment, error) {
	var treatments []Treatment
	if err := s.client.do(ctx, http.MethodGet, "/treatments", nil, nil, &treatments); err != nil {
		return nil, err
	}
	return treatments, nil
}

// Get returns one treatment with its items.
func (s *TreatmentsService) Get(ctx context.Context, id string) (*Treatment, error) {
	var treatment Treatment
	if err := s.client.do(ctx, http.MethodGet, "/treatments/"+id, nil, nil, &treatment); err != nil {
		return nil, err
	}
	return &treatment, nil
}

// Create adds a treatment.
func (s *TreatmentsService) Create(ctx context.Context, req CreateTreatmentRequest) (*Treatment, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}
	var treatment Treatment
	if err := s.client.do(ctx, http.MethodPost, "/treatments", nil, req, &treatment); err != nil {
		return nil, err
	}
	return &treatment, nil
}

// Update applies a partial update to a treatment.
func (s *TreatmentsService) Update(ctx context.Context, id string, req UpdateTreatmentRequest) (*Treatment, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}
	var treatment Treatment
	if err := s.client.do(ctx, http.MethodPut, "/treatments/"+id, nil, req, &treatment); err != nil {
		return nil, err
	}
	return &treatment, nil
}

// Delete removes a treatment.
func (s *TreatmentsService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/treatments/"+id, nil, nil, nil)
}
