package dto

type AttachmentResponseDTO struct {
	ID          uint64 `json:"id"`
	EquipmentID uint64 `json:"equipmentId"`
	FileName    string `json:"name"`
	FileSize    int64  `json:"size"`
	FileType    string `json:"type"`
	URL         string `json:"url"`
	UploadedBy  string `json:"uploadedBy"`
	UploadedAt  string `json:"uploadedAt"`
}
