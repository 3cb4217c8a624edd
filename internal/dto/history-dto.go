package dto

type CreateHistoryDTO struct {
	EquipmentID *uint64 `json:"equipmentId,omitempty"`
	EntityType  string  `json:"entityType" validate:"required,oneof=equipment purchase responsibility_term"`
	EntityID    uint64  `json:"entityId" validate:"required,gt=0"`
	UserName    *string `json:"userName,omitempty"`
	ChangeType  string  `json:"changeType" validate:"required"`
	Field       *string `json:"field,omitempty"`
	OldValue    *string `json:"oldValue,omitempty"`
	NewValue    *string `json:"newValue,omitempty"`
}

type HistoryEntryDTO struct {
	ID          uint64  `json:"id"`
	EquipmentID *uint64 `json:"equipmentId,omitempty"`
	EntityType  string  `json:"entityType"`
	EntityID    uint64  `json:"entityId"`
	UserName    string  `json:"userName"`
	ChangeType  string  `json:"changeType"`
	Field       *string `json:"field,omitempty"`
	OldValue    *string `json:"oldValue,omitempty"`
	NewValue    *string `json:"newValue,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}
