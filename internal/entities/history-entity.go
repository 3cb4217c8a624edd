package entities

import "time"

// HistoryEntry — неизменяемая запись журнала аудита.
// EquipmentID равен NULL, когда событие не привязано к существующему
// оборудованию (удалённое оборудование, закупки).
type HistoryEntry struct {
	ID          uint64    `db:"id"`
	EquipmentID *uint64   `db:"equipment_id"`
	EntityType  string    `db:"entity_type"`
	EntityID    uint64    `db:"entity_id"`
	UserName    string    `db:"user_name"`
	ChangeType  string    `db:"change_type"`
	Field       *string   `db:"field"`
	OldValue    *string   `db:"old_value"`
	NewValue    *string   `db:"new_value"`
	CreatedAt   time.Time `db:"created_at"`
}
