package billing

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// AuditService reads the audit trail and records client-side actions.
// Entries are write-only from the client's perspective; there is no
// update or delete.
type AuditService struct {
	client *Client
}

// AuditListOptions filters the audit trail.
type AuditListOptions struct {
	EntityType string
	EntityID   string
	Action     string
	StartDate  time.Time
	EndDate    time.Time
	Page       int
	Limit      int
}

// RecordAuditRequest captures one action for the audit trail.
type RecordAuditRequest struct {
	Action     string         `json:"action" validate:"required"`
	EntityType string         `json:"entity_type" validate:"required"`
	EntityID   string         `json:"entity_id" validate:"required"`
	OldValues  map[string]any `json:"old_values,omitempty"`
	NewValues  map[string]any `json:"new_values,omitempty"`
}

// List returns a page of audit entries matching the given filters.
func (s *AuditService) List(ctx context.Context, opts AuditListOptions) (*Paginated[AuditLog], error) {
	query := url.Values{}
	if opts.EntityType != "" {
		query.Set("entity_type", opts.EntityType)
	}
	if opts.EntityID != "" {
		query.Set("entity_id", opts.EntityID)
	}
	if opts.Action != "" {
		query.Set("action", opts.Action)
	}
	if !opts.StartDate.IsZero() {
		query.Set("start_date", opts.StartDate.Format("2006-01-02"))
	}
	if !opts.EndDate.IsZero() {
		query.Set("end_date", opts.EndDate.Format("2006-01-02"))
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	var page Paginated[AuditLog]
	if err := s.client.do(ctx, http.MethodGet, "/audit", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Record appends one entry to the audit trail.
func (s *AuditService) Record(ctx context.Context, req RecordAuditRequest) error {
	if err := s.client.validateRequest(req); err != nil {
		return err
	}
	return s.client.do(ctx, http.MethodPost, "/audit/log", nil, req, nil)
}
