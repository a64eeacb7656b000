package billing

import (
	"context"
	"net/http"

	"github.com/medledger/medledger-go/money"
)

// DiscountsService manages the approved discount reasons.
type DiscountsService struct {
	client *Client
}

// CreateDiscountReasonRequest adds a discount reason.
type CreateDiscountReasonRequest struct {
	Reason           string        `json:"reason" validate:"required"`
	RequiresApproval bool          `json:"requires_approval"`
	MaxPercentage    money.Percent `json:"max_percentage" validate:"min=0,max=10000"`
}

// UpdateDiscountReasonRequest carries a partial discount reason update.
type UpdateDiscountReasonRequest struct {
	Reason           *string        `json:"reason,omitempty"`
	RequiresApproval *bool          `json:"requires_approval,omitempty"`
	MaxPercentage    *money.Percent `json:"max_percentage,omitempty" validate:"omitempty,min=0,max=10000"`
	IsActive         *bool          `json:"is_active,omitempty"`
}

// List returns all discount reasons.
func (s *DiscountsService) List(ctx context.Context) ([]DiscountReason, error) {
	var reasons []DiscountReason
	if err := s.client.do(ctx, http.MethodGet, "/discounts", nil, nil, &reasons); err != nil {
		return nil, err
	}
	return reasons, nil
}

// Get returns one discount reason by id.
func (s *DiscountsService) Get(ctx context.Context, id string) (*DiscountReason, error) {
	var reason DiscountReason
	if err := s.client.do(ctx, http.MethodGet, "/discounts/"+id, nil, nil, &reason); err != nil {
		return nil, err
	}
	return &reason, nil
}

// Create adds a discount reason.
func (s *DiscountsService) Create(ctx context.Context, req CreateDiscountReasonRequest) (*DiscountReason, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}
	var reason DiscountReason
	if err := s.client.do(ctx, http.MethodPost, "/discounts", nil, req, &reason); err != nil {
		return nil, err
	}
	return &reason, nil
}

// Update applies a partial update to a discount reason.
func (s *DiscountsService) Update(ctx context.Context, id string, req UpdateDiscountReasonRequest) (*DiscountReason, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}
	var reason DiscountReason
	if err := s.client.do(ctx, http.MethodPut, "/discounts/"+id, nil, req, &reason); err != nil {
		return nil, err
	}
	return &reason, nil
}

// Delete removes a discount reason.
func (s *DiscountsService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/discounts/"+id, nil, nil, nil)
}
