package dto

type CreateTermDTO struct {
	EquipmentID     uint64  `json:"equipmentId" validate:"required,gt=0"`
	Responsible     string  `json:"responsible" validate:"required"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone           *string `json:"phone,omitempty"`
	Department      *string `json:"department,omitempty"`
	TermDate        string  `json:"termDate" validate:"required,datetime=2006-01-02"`
	Observations    *string `json:"observations,omitempty"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=draft sent signed cancelled"`
	ManualSignature *string `json:"manualSignature,omitempty"`
	// PdfBase64 — необязательное содержимое готового PDF-терма.
	// Если передано, файл сохраняется в хранилище, а pdfUrl заполняется.
	PdfBase64 *string `json:"pdfBase64,omitempty"`
}

type UpdateTermStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=draft sent signed cancelled"`
}

type AttachTermPdfDTO struct {
	PdfBase64 string `json:"pdfBase64" validate:"required"`
}

type TermDTO struct {
	ID              uint64  `json:"id"`
	EquipmentID     uint64  `json:"equipmentId"`
	Responsible     string  `json:"responsible"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Department      *string `json:"department,omitempty"`
	TermDate        string  `json:"termDate"`
	Observations    *string `json:"observations,omitempty"`
	PdfURL          *string `json:"pdfUrl,omitempty"`
	ManualSignature *string `json:"manualSignature,omitempty"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}
