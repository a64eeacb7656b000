package billing

import (
	"time"

	"github.com/medledger/medledger-go/money"
	"github.com/medledger/medledger-go/pricing"
)

// Role identifies a staff member's access level. The server is the only
// authority on roles; the client never derives or upgrades one.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleBillingClerk Role = "billing_clerk"
)

// User is an authenticated staff account.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	FullName    string    `json:"full_name,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Specialty   string    `json:"specialty,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// Doctor extends User with practice details.
type Doctor struct {
	User
	LicenseNumber string `json:"license_number,omitempty"`
	Department    string `json:"department,omitempty"`
}

// DoctorStats summarises a doctor's billing activity.
type DoctorStats struct {
	TotalPatients       int          `json:"totalPatients"`
	TotalInvoices       int          `json:"totalInvoices"`
	TotalRevenue        money.Amount `json:"totalRevenue"`
	AverageInvoiceValue money.Amount `json:"averageInvoiceValue"`
	ActivePatients      int          `json:"activePatients"`
	RecentInvoices      []Invoice    `json:"recentInvoices,omitempty"`
}

// DoctorWithStats is the /doctors/stats list element.
type DoctorWithStats struct {
	Doctor
	DoctorStats
	Patients []Patient `json:"patients,omitempty"`
	Invoices []Invoice `json:"invoices,omitempty"`
}

// DoctorDetails is the /doctors/{id}/details response.
type DoctorDetails struct {
	Doctor   Doctor      `json:"doctor"`
	Stats    DoctorStats `json:"stats"`
	Patients []Patient   `json:"patients,omitempty"`
	Invoices []Invoice   `json:"invoices,omitempty"`
}

// Patient is a registered hospital patient.
type Patient struct {
	ID               string    `json:"id"`
	PatientCode      string    `json:"patient_code"`
	FullName         string    `json:"full_name"`
	ContactNumber    string    `json:"contact_number,omitempty"`
	Email            string    `json:"email,omitempty"`
	Address          string    `json:"address,omitempty"`
	DateOfBirth      string    `json:"date_of_birth,omitempty"`
	Gender           string    `json:"gender,omitempty"`
	BloodGroup       string    `json:"blood_group,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	DoctorID         string    `json:"doctor_id,omitempty"`
	CreatedAt        time.Time `json:"created_at,omitzero"`
	UpdatedAt        time.Time `json:"updated_at,omitzero"`
	Doctor           *Doctor   `json:"doctor,omitempty"`
	Invoices         []Invoice `json:"invoices,omitempty"`
}

// BillableItem is a priced, taxable service or product offered on its own.
type BillableItem struct {
	ID          string        `json:"id"`
	ItemCode    string        `json:"item_code"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Category    string        `json:"category,omitempty"`
	UnitPrice   money.Amount  `json:"unit_price"`
	TaxRate     money.Percent `json:"tax_rate"`
	IsActive    bool          `json:"is_active"`
	CreatedAt   time.Time     `json:"created_at,omitzero"`
	UpdatedAt   time.Time     `json:"updated_at,omitzero"`
}

// PricingType selects how a package is charged.
type PricingType string

const (
	PricingFixed    PricingType = "fixed"
	PricingItemized PricingType = "itemized"
)

// Package bundles billable items under one code.
type Package struct {
	ID          string        `json:"id"`
	PackageCode string        `json:"package_code"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	PricingType PricingType   `json:"pricing_type"`
	FixedPrice  money.Amount  `json:"fixed_price"`
	IsActive    bool          `json:"is_active"`
	CreatedAt   time.Time     `json:"created_at,omitzero"`
	UpdatedAt   time.Time     `json:"updated_at,omitzero"`
	Items       []PackageItem `json:"items,omitempty"`
}

// PackageItem is one billable line inside a package.
type PackageItem struct {
	ID             string        `json:"id"`
	PackageID      string        `json:"package_id"`
	BillableItemID string        `json:"billable_item_id"`
	Quantity       int           `json:"quantity"`
	BillableItem   *BillableItem `json:"billable_item,omitempty"`
	BillableName   string        `json:"billable_name,omitempty"`
	UnitPrice      money.Amount  `json:"unit_price,omitempty"`
	TaxRate        money.Percent `json:"tax_rate,omitempty"`
	Category       string        `json:"category,omitempty"`
}

// Treatment is a named composite of billable items and packages.
type Treatment struct {
	ID            string          `json:"id"`
	TreatmentCode string          `json:"treatment_code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at,omitzero"`
	UpdatedAt     time.Time       `json:"updated_at,omitzero"`
	Items         []TreatmentItem `json:"items,omitempty"`
}

// TreatmentItem references either a billable item or a package.
type TreatmentItem struct {
	ID             string        `json:"id"`
	TreatmentID    string        `json:"treatment_id"`
	BillableItemID string        `json:"billable_item_id,omitempty"`
	PackageID      string        `json:"package_id,omitempty"`
	Quantity       int           `json:"quantity"`
	CreatedAt      time.Time     `json:"created_at,omitzero"`
	BillableItem   *BillableItem `json:"billable_item,omitempty"`
	Package        *Package      `json:"package,omitempty"`
}

// InvoiceStatus tracks an invoice through its lifecycle.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "draft"
	StatusFinalized InvoiceStatus = "finalized"
	StatusPaid      InvoiceStatus = "paid"
	StatusCancelled InvoiceStatus = "cancelled"
)

// CanTransition reports whether the status may move to the given target.
// Transitions run forward only (draft, finalized, paid); cancellation is
// terminal and allowed from any state except paid.
func (s InvoiceStatus) CanTransition(to InvoiceStatus) bool {
	switch to {
	case StatusFinalized:
		return s == StatusDraft
	case StatusPaid:
		return s == StatusFinalized
	case StatusCancelled:
		return s == StatusDraft || s == StatusFinalized
	default:
		return false
	}
}

// ItemType distinguishes invoice lines sourced from billables and packages.
type ItemType string

const (
	ItemBillable ItemType = "billable"
	ItemPackage  ItemType = "package"
)

// Invoice aggregates an ordered list of line items with derived totals.
type Invoice struct {
	ID             string        `json:"id"`
	InvoiceNumber  string        `json:"invoice_number"`
	PatientID      string        `json:"patient_id"`
	DoctorID       string        `json:"doctor_id,omitempty"`
	CreatedBy      string        `json:"created_by,omitempty"`
	Status         InvoiceStatus `json:"status"`
	Subtotal       money.Amount  `json:"subtotal"`
	TaxAmount      money.Amount  `json:"tax_amount"`
	DiscountAmount money.Amount  `json:"discount_amount"`
	TotalAmount    money.Amount  `json:"total_amount"`
	DiscountReason string        `json:"discount_reason,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	FinalizedAt    *time.Time    `json:"finalized_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at,omitzero"`
	UpdatedAt      time.Time     `json:"updated_at,omitzero"`
	PatientName    string        `json:"patient_name,omitempty"`
	PatientCode    string        `json:"patient_code,omitempty"`
	DoctorName     string        `json:"doctor_name,omitempty"`
	Items          []InvoiceItem `json:"items,omitempty"`
}

// InvoiceItem is one priced row on an invoice.
type InvoiceItem struct {
	ID              string        `json:"id"`
	InvoiceID       string        `json:"invoice_id"`
	ItemType        ItemType      `json:"item_type"`
	BillableItemID  string        `json:"billable_item_id,omitempty"`
	PackageID       string        `json:"package_id,omitempty"`
	Description     string        `json:"description"`
	Quantity        int           `json:"quantity"`
	UnitPrice       money.Amount  `json:"unit_price"`
	TaxRate         money.Percent `json:"tax_rate"`
	LineTotal       money.Amount  `json:"line_total"`
	Category        string        `json:"category,omitempty"`
	ParentPackageID string        `json:"parent_package_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at,omitzero"`
}

// RecomputedTotals re-derives subtotal and tax from the stored line items,
// carrying the stored discount amount. Stored totals must never diverge
// from this recomputation.
func (inv *Invoice) RecomputedTotals() pricing.Totals {
	items := make([]pricing.Item, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, pricing.Item{
			Qty:       it.Quantity,
			UnitPrice: it.UnitPrice,
			TaxRate:   it.TaxRate,
		})
	}
	totals := pricing.Compute(items, 0)
	totals.Discount = inv.DiscountAmount
	totals.Total = totals.Subtotal + totals.Tax - totals.Discount
	return totals
}

// TotalsConsistent reports whether the stored totals match a recomputation
// over the stored line items.
func (inv *Invoice) TotalsConsistent() bool {
	totals := inv.RecomputedTotals()
	return totals.Subtotal == inv.Subtotal &&
		totals.Tax == inv.TaxAmount &&
		totals.Total == inv.TotalAmount
}

// DiscountReason is a named justification capping allowed discounts.
type DiscountReason struct {
	ID               string        `json:"id"`
	Reason           string        `json:"reason"`
	RequiresApproval bool          `json:"requires_approval"`
	MaxPercentage    money.Percent `json:"max_percentage"`
	IsActive         bool          `json:"is_active"`
	CreatedAt        time.Time     `json:"created_at,omitzero"`
}

// Allows reports whether the given discount percentage falls within the
// reason's cap.
func (d DiscountReason) Allows(p money.Percent) bool {
	return p >= 0 && p <= d.MaxPercentage
}

// AuditLog is one immutable audit trail entry.
type AuditLog struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	OldValues  string    `json:"old_values,omitempty"`
	NewValues  string    `json:"new_values,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
	UserEmail  string    `json:"user_email,omitempty"`
	UserRole   Role      `json:"user_role,omitempty"`
}

// DashboardStats is the /invoices/stats response.
type DashboardStats struct {
	TotalInvoices   int          `json:"totalInvoices"`
	TotalPatients   int          `json:"totalPatients"`
	TotalPackages   int          `json:"totalPackages"`
	TotalRevenue    money.Amount `json:"totalRevenue"`
	TodayRevenue    money.Amount `json:"todayRevenue"`
	PendingInvoices int          `json:"pendingInvoices"`
}

// Pagination carries list paging metadata.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Paginated wraps a page of results with its paging metadata.
type Paginated[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}
