package billing

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/medledger/medledger-go/money"
	"github.com/medledger/medledger-go/pricing"
)

// InvoicesService manages invoices and their lifecycle.
type InvoicesService struct {
	client *Client
}

// InvoiceItemInput is one line of an invoice draft.
type InvoiceItemInput struct {
	ItemType        ItemType      `json:"item_type" validate:"required,oneof=billable package"`
	BillableItemID  string        `json:"billable_item_id,omitempty"`
	PackageID       string        `json:"package_id,omitempty"`
	Description     string        `json:"description" validate:"required"`
	Quantity        int           `json:"quantity" validate:"required,gt=0"`
	UnitPrice       money.Amount  `json:"unit_price" validate:"min=0"`
	TaxRate         money.Percent `json:"tax_rate" validate:"min=0,max=10000"`
	Category        string        `json:"category,omitempty"`
	ParentPackageID string        `json:"parent_package_id,omitempty"`
}

// CreateInvoiceRequest submits an invoice draft.
type CreateInvoiceRequest struct {
	PatientID          string             `json:"patient_id" validate:"required"`
	DoctorID           string             `json:"doctor_id,omitempty"`
	Items              []InvoiceItemInput `json:"items" validate:"required,min=1,dive"`
	DiscountPercentage money.Percent      `json:"discount_percentage,omitempty" validate:"min=0,max=10000"`
	DiscountReason     string             `json:"discount_reason,omitempty"`
	Notes              string             `json:"notes,omitempty"`
	Status             InvoiceStatus      `json:"status,omitempty" validate:"omitempty,oneof=draft finalized"`
}

// Quote computes the totals the server is expected to derive for this
// draft, letting callers display them before submission.
func (r CreateInvoiceRequest) Quote() pricing.Totals {
	items := make([]pricing.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, pricing.Item{
			Qty:       it.Quantity,
			UnitPrice: it.UnitPrice,
			TaxRate:   it.TaxRate,
		})
	}
	return pricing.Compute(items, r.DiscountPercentage)
}

// UpdateInvoiceRequest carries a partial update of a draft invoice.
type UpdateInvoiceRequest struct {
	DoctorID       *string `json:"doctor_id,omitempty"`
	DiscountReason *string `json:"discount_reason,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// InvoiceListOptions filters invoice listings.
type InvoiceListOptions struct {
	Status    InvoiceStatus
	PatientID string
	DoctorID  string
	StartDate time.Time
	EndDate   time.Time
}

// Create submits an invoice draft.
func (s *InvoicesService) Create(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}
	var invoice Invoice
	if err := s.client.do(ctx, http.MethodPost, "/invoices", nil, req, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// List returns invoices matching the given filters.
func (s *InvoicesService) List(ctx context.Context, opts InvoiceListOptions) ([]Invoice, error) {
	query := url.Values{}
	if opts.Status != "" {
		query.Set("status", string(opts.Status))
	}
	if opts.PatientID != "" {
		query.Set("patient_id", opts.PatientID)
	}
	if opts.DoctorID != "" {
		query.Set("doctor_id", opts.DoctorID)
	}
	if !opts.StartDate.IsZero() {
		query.Set("start_date", opts.StartDate.Format("2006-01-02"))
	}
	if !opts.EndDate.IsZero() {
		query.Set("end_date", opts.EndDate.Format("2006-01-02"))
	}
	var invoices []Invoice
	if err := s.client.do(ctx, http.MethodGet, "/invoices", query, nil, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// Get returns one invoice with its line items.
func (s *InvoicesService) Get(ctx context.Context, id string) (*Invoice, error) {
	var invoice Invoice
	if err := s.client.do(ctx, http.MethodGet, "/invoices/"+id, nil, nil, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Recent returns the most recently created invoices.
func (s *InvoicesService) Recent(ctx context.Context, limit int) ([]Invoice, error) {
	if limit <= 0 {
		limit = 5
	}
	query := url.Values{"limit": []string{strconv.Itoa(limit)}}
	var invoices []Invoice
	if err := s.client.do(ctx, http.MethodGet, "/invoices/recent", query, nil, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// UpdateStatus moves an invoice along its lifecycle. Transitions the
// state machine forbids are rejected locally with ErrBadTransition
// before any call is made.
func (s *InvoicesService) UpdateStatus(ctx context.Context, id string, from, to InvoiceStatus) (*Invoice, error) {
	if !from.CanTransition(to) {
		return nil, fmt.Errorf("%w: %s to %s", ErrBadTransition, from, to)
	}
	body := map[string]InvoiceStatus{"status": to}
	var invoice Invoice
	if err := s.client.do(ctx, http.MethodPatch, "/invoices/"+id+"/status", nil, body, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Update applies a partial update to a draft invoice.
func (s *InvoicesService) Update(ctx context.Context, id string, req UpdateInvoiceRequest) (*Invoice, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}
	var invoice Invoice
	if err := s.client.do(ctx, http.MethodPut, "/invoices/"+id, nil, req, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Delete removes an invoice.
func (s *InvoicesService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/invoices/"+id, nil, nil, nil)
}

// Stats returns the dashboard figures.
func (s *InvoicesService) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := s.client.do(ctx, http.MethodGet, "/invoices/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
