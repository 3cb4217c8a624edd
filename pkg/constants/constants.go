// Файл: pkg/constants/constants.go
package constants

// Статусы оборудования
const (
	EquipmentStatusActive      = "active"
	EquipmentStatusMaintenance = "maintenance"
	EquipmentStatusDeactivated = "deactivated"
)

// Статусы закупок
const (
	PurchaseStatusPending  = "pending"
	PurchaseStatusApproved = "approved"
	PurchaseStatusRejected = "rejected"
	PurchaseStatusAcquired = "acquired"
)

// Срочность закупок
const (
	PurchaseUrgencyLow      = "low"
	PurchaseUrgencyMedium   = "medium"
	PurchaseUrgencyHigh     = "high"
	PurchaseUrgencyCritical = "critical"
)

// Статусы термов ответственности
const (
	TermStatusDraft     = "draft"
	TermStatusSent      = "sent"
	TermStatusSigned    = "signed"
	TermStatusCancelled = "cancelled"
)

// Типы сущностей в журнале истории
const (
	EntityTypeEquipment = "equipment"
	EntityTypePurchase  = "purchase"
	EntityTypeTerm      = "responsibility_term"
)

// Типы событий в журнале истории
const (
	ChangeTypeCreated       = "created"
	ChangeTypeEdited        = "edited"
	ChangeTypeDeleted       = "deleted"
	ChangeTypeMaintenance   = "maintenance"
	ChangeTypeStatusChanged = "status-changed"
	ChangeTypeFileAttached  = "file-attached"
	ChangeTypeFileRemoved   = "file-removed"
)

// DefaultUserName используется, когда клиент не передал имя актора.
const DefaultUserName = "system"
