// Файл: internal/services/transform.go
// Преобразование сущностей хранилища (snake_case) в DTO API (camelCase).
// Только отображение, без бизнес-логики; функции тотальны — на корректной
// сущности никогда не паникуют и не возвращают ошибок.
package services

import (
	"time"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
)

func formatDate(t time.Time) string {
	return t.Format(dto.DateLayout)
}

func formatOptDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dto.DateLayout)
	return &s
}

func formatDateTime(t time.Time) string {
	return t.Format(dto.DateTimeLayout)
}

func equipmentToDTO(e *entities.Equipment) *dto.EquipmentDTO {
	return &dto.EquipmentDTO{
		ID:                     e.ID,
		AssetNumber:            e.AssetNumber,
		Description:            e.Description,
		Brand:                  e.Brand,
		Model:                  e.Model,
		Specs:                  e.Specs,
		Status:                 e.Status,
		Location:               e.Location,
		Responsible:            e.Responsible,
		AcquisitionDate:        formatDate(e.AcquisitionDate),
		InvoiceDate:            formatOptDate(e.InvoiceDate),
		Value:                  e.Value,
		MaintenanceDescription: e.MaintenanceDescription,
		CreatedAt:              formatDateTime(e.CreatedAt),
		UpdatedAt:              formatDateTime(e.UpdatedAt),
	}
}

func purchaseToDTO(p *entities.Purchase) *dto.PurchaseDTO {
	return &dto.PurchaseDTO{
		ID:              p.ID,
		Description:     p.Description,
		Brand:           p.Brand,
		Model:           p.Model,
		Specs:           p.Specs,
		Location:        p.Location,
		Urgency:         p.Urgency,
		Status:          p.Status,
		RequestedBy:     p.RequestedBy,
		RequestDate:     formatDate(p.RequestDate),
		ExpectedDate:    formatOptDate(p.ExpectedDate),
		Supplier:        p.Supplier,
		Observations:    p.Observations,
		ApprovedBy:      p.ApprovedBy,
		ApprovalDate:    formatOptDate(p.ApprovalDate),
		RejectionReason: p.RejectionReason,
		CreatedAt:       formatDateTime(p.CreatedAt),
		UpdatedAt:       formatDateTime(p.UpdatedAt),
	}
}

func termToDTO(t *entities.ResponsibilityTerm) *dto.TermDTO {
	return &dto.TermDTO{
		ID:              t.ID,
		EquipmentID:     t.EquipmentID,
		Responsible:     t.Responsible,
		Email:           t.Email,
		Phone:           t.Phone,
		Department:      t.Department,
		TermDate:        formatDate(t.TermDate),
		Observations:    t.Observations,
		PdfURL:          t.PdfURL,
		ManualSignature: t.ManualSignature,
		Status:          t.Status,
		CreatedAt:       formatDateTime(t.CreatedAt),
		UpdatedAt:       formatDateTime(t.UpdatedAt),
	}
}

func historyToDTO(h *entities.HistoryEntry) *dto.HistoryEntryDTO {
	return &dto.HistoryEntryDTO{
		ID:          h.ID,
		EquipmentID: h.EquipmentID,
		EntityType:  h.EntityType,
		EntityID:    h.EntityID,
		UserName:    h.UserName,
		ChangeType:  h.ChangeType,
		Field:       h.Field,
		OldValue:    h.OldValue,
		NewValue:    h.NewValue,
		CreatedAt:   formatDateTime(h.CreatedAt),
	}
}

func historyListToDTO(entries []entities.HistoryEntry) []dto.HistoryEntryDTO {
	list := make([]dto.HistoryEntryDTO, 0, len(entries))
	for i := range entries {
		list = append(list, *historyToDTO(&entries[i]))
	}
	return list
}

func attachmentToDTO(a *entities.Attachment) *dto.AttachmentResponseDTO {
	return &dto.AttachmentResponseDTO{
		ID:          a.ID,
		EquipmentID: a.EquipmentID,
		FileName:    a.FileName,
		FileSize:    a.FileSize,
		FileType:    a.FileType,
		URL:         "/uploads/" + a.FilePath,
		UploadedBy:  a.UploadedBy,
		UploadedAt:  formatDateTime(a.UploadedAt),
	}
}
