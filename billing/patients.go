package billing

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// PatientsService manages patient records.
type PatientsService struct {
	client *Client
}

// CreatePatientRequest registers a patient.
type CreatePatientRequest struct {
	PatientCode      string `json:"patient_code,omitempty"`
	FullName         string `json:"full_name" validate:"required"`
	ContactNumber    string `json:"contact_number,omitempty"`
	Email            string `json:"email,omitempty" validate:"omitempty,email"`
	Address          string `json:"address,omitempty"`
	DateOfBirth      string `json:"date_of_birth,omitempty"`
	Gender           string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	BloodGroup       string `json:"blood_group,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
	DoctorID         string `json:"doctor_id,omitempty"`
}

// UpdatePatientRequest carries a partial patient update.
type UpdatePatientRequest struct {
	FullName         *string `json:"full_name,omitempty"`
	ContactNumber    *string `json:"contact_number,omitempty"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email"`
	Address          *string `json:"address,omitempty"`
	DateOfBirth      *string `json:"date_of_birth,omitempty"`
	Gender           *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	BloodGroup       *string `json:"blood_group,omitempty"`
	EmergencyContact *string `json:"emergency_contact,omitempty"`
	DoctorID         *string `json:"doctor_id,omitempty"`
}

// PatientListOptions filters patient listings.
type PatientListOptions struct {
	Search   string
	DoctorID string
}

// Create registers a patient.
func (s *PatientsService) Create(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}
	var patient Patient
	if err := s.client.do(ctx, http.MethodPost, "/patients", nil, req, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// List returns patients matching the given filters.
func (s *PatientsService) List(ctx context.Context, opts PatientListOptions) ([]Patient, error) {
	query := url.Values{}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}
	if opts.DoctorID != "" {
		query.Set("doctor_id", opts.DoctorID)
	}
	var patients []Patient
	if err := s.client.do(ctx, http.MethodGet, "/patients", query, nil, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

// Get returns one patient by id.
func (s *PatientsService) Get(ctx context.Context, id string) (*Patient, error) {
	var patient Patient
	if err := s.client.do(ctx, http.MethodGet, "/patients/"+id, nil, nil, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// Update applies a partial update to a patient.
func (s *PatientsService) Update(ctx context.Context, id string, req UpdatePatientRequest) (*Patient, error) {
	if err := s.client.validateRequest(req); err != nil {
		return nil, err
	}
	var patient Patient
	if err := s.client.do(ctx, http.MethodPut, "/patients/"+id, nil, req, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// Delete removes a patient record.
func (s *PatientsService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/patients/"+id, nil, nil, nil)
}

// Recent returns the most recently registered patients.
func (s *PatientsService) Recent(ctx context.Context, limit int) ([]Patient, error) {
	if limit <= 0 {
		limit = 5
	}
	query := url.Values{"limit": []string{strconv.Itoa(limit)}}
	var patients []Patient
	if err := s.client.do(ctx, http.MethodGet, "/patients/recent", query, nil, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}
