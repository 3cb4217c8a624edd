package dto

type CreatePurchaseDTO struct {
	Description  string  `json:"description" validate:"required"`
	Brand        *string `json:"brand,omitempty"`
	Model        *string `json:"model,omitempty"`
	Specs        *string `json:"specs,omitempty"`
	Location     *string `json:"location,omitempty"`
	Urgency      string  `json:"urgency" validate:"required,oneof=low medium high critical"`
	RequestedBy  string  `json:"requestedBy" validate:"required"`
	RequestDate  string  `json:"requestDate" validate:"required,datetime=2006-01-02"`
	ExpectedDate *string `json:"expectedDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Supplier     *string `json:"supplier,omitempty"`
	Observations *string `json:"observations,omitempty"`
}

type UpdatePurchaseDTO struct {
	Description  *string `json:"description,omitempty"`
	Brand        *string `json:"brand,omitempty"`
	Model        *string `json:"model,omitempty"`
	Specs        *string `json:"specs,omitempty"`
	Location     *string `json:"location,omitempty"`
	Urgency      *string `json:"urgency,omitempty" validate:"omitempty,oneof=low medium high critical"`
	ExpectedDate *string `json:"expectedDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Supplier     *string `json:"supplier,omitempty"`
	Observations *string `json:"observations,omitempty"`
}

type RejectPurchaseDTO struct {
	Reason string `json:"reason" validate:"required"`
}

// ConvertPurchaseDTO — переопределения при конвертации закупки в оборудование.
// Явно переданные поля побеждают значения из закупки.
type ConvertPurchaseDTO struct {
	AssetNumber     *string  `json:"assetNumber,omitempty" validate:"omitempty,asset_number"`
	Description     *string  `json:"description,omitempty"`
	Brand           *string  `json:"brand,omitempty"`
	Model           *string  `json:"model,omitempty"`
	Specs           *string  `json:"specs,omitempty"`
	Location        *string  `json:"location,omitempty"`
	Responsible     *string  `json:"responsible,omitempty"`
	AcquisitionDate *string  `json:"acquisitionDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	InvoiceDate     *string  `json:"invoiceDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Value           *float64 `json:"value,omitempty" validate:"omitempty,gte=0"`
}

type PurchaseDTO struct {
	ID              uint64  `json:"id"`
	Description     string  `json:"description"`
	Brand           *string `json:"brand,omitempty"`
	Model           *string `json:"model,omitempty"`
	Specs           *string `json:"specs,omitempty"`
	Location        *string `json:"location,omitempty"`
	Urgency         string  `json:"urgency"`
	Status          string  `json:"status"`
	RequestedBy     string  `json:"requestedBy"`
	RequestDate     string  `json:"requestDate"`
	ExpectedDate    *string `json:"expectedDate,omitempty"`
	Supplier        *string `json:"supplier,omitempty"`
	Observations    *string `json:"observations,omitempty"`
	ApprovedBy      *string `json:"approvedBy,omitempty"`
	ApprovalDate    *string `json:"approvalDate,omitempty"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

type PurchaseStatsDTO struct {
	Total     uint64            `json:"total"`
	ByStatus  map[string]uint64 `json:"byStatus"`
	ByUrgency map[string]uint64 `json:"byUrgency"`
}
