package entities

import "time"

type Attachment struct {
	ID          uint64    `db:"id"`
	EquipmentID uint64    `db:"equipment_id"`
	FileName    string    `db:"file_name"`
	FileSize    int64     `db:"file_size"`
	FileType    string    `db:"file_type"`
	FilePath    string    `db:"file_path"`
	UploadedBy  string    `db:"uploaded_by"`
	UploadedAt  time.Time `db:"uploaded_at"`
}
