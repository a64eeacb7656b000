package billing

import (
	"context"
	"net/http"
)

// DoctorsService manages doctor accounts and their billing views.
type DoctorsService struct {
	client *Client
}

// CreateDoctorRequest creates a doctor account. The role is fixed by the
// endpoint; callers only supply practice details.
type CreateDoctorRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	FullName      string `json:"full_name" validate:"required"`
	PhoneNumber   string `json:"phone_number,omitempty"`
	Specialty     string `json:"specialty,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
	Department    string `json:"department,omitempty"`
}

// UpdateDoctorRequest carries a partial doctor update.
type UpdateDoctorRequest struct {
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	FullName      *string `json:"full_name,omitempty"`
	PhoneNumber   *string `json:"phone_number,omitempty"`
	Specialty     *string `json:"specialty,omitempty"`
	LicenseNumber *string `json:"license_number,omitempty"`
	Department    *string `json:"department,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

type createDoctorBody struct {
	CreateDoctorRequest
	Role Role `json:"role"`
}

// List returns all doctors.
func (s *DoctorsService) List(ctx context.Context) ([]Doctor, error) {
	var doctors []Doctor
	if err := s.client.do(ctx, http.MethodGet, "/doctors", nil, nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// Get returns one doctor by id.
func (s *DoctorsService) Get(ctx context.Context, id string) (*Doctor, error) {
	var doctor Doctor
	if err := s.client.do(ctx, http.MethodGet, "/doctors/"+id, nil, nil, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// Create adds a doctor account.
func (s *DoctorsService) Create(ctx context.Context, req CreateDoctorRequest) (*Doctor, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}
	body := createDoctorBody{CreateDoctorRequest: req, Role: RoleDoctor}
	var doctor Doctor
	if err := s.client.do(ctx, http.MethodPost, "/doctors", nil, body, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// Update applies a partial update to a doctor.
func (s *DoctorsService) Update(ctx context.Context, id string, req UpdateDoctorRequest) (*Doctor, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}
	var doctor Doctor
	if err := s.client.do(ctx, http.MethodPut, "/doctors/"+id, nil, req, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// Delete removes a doctor account.
func (s *DoctorsService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/doctors/"+id, nil, nil, nil)
}

// Stats returns one doctor's billing summary.
func (s *DoctorsService) Stats(ctx context.Context, id string) (*DoctorStats, error) {
	var stats DoctorStats
	if err := s.client.do(ctx, http.MethodGet, "/doctors/"+id+"/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Details returns a doctor together with stats, patients and invoices.
func (s *DoctorsService) Details(ctx context.Context, id string) (*DoctorDetails, error) {
	var details DoctorDetails
	if err := s.client.do(ctx, http.MethodGet, "/doctors/"+id+"/details", nil, nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// ListWithStats returns every doctor with an attached billing summary.
func (s *DoctorsService) ListWithStats(ctx context.Context) ([]DoctorWithStats, error) {
	var doctors []DoctorWithStats
	if err := s.client.do(ctx, http.MethodGet, "/doctors/stats", nil, nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// Invoices returns the invoices attributed to a doctor.
func (s *DoctorsService) Invoices(ctx context.Context, id string) ([]Invoice, error) {
	var invoices []Invoice
	if err := s.client.do(ctx, http.MethodGet, "/doctors/"+id+"/invoices", nil, nil, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}
