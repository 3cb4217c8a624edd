// Файл: internal/repositories/attachment-repository.go
package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"
)

const attachmentTable = "attachments"
const attachmentFields = "id, equipment_id, file_name, file_size, file_type, file_path, uploaded_by, uploaded_at"

type AttachmentRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, attachment *entities.Attachment) (uint64, error)
	FindAllByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.Attachment, error)
	FindByID(ctx context.Context, id uint64) (*entities.Attachment, error)
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
	DeleteByEquipmentID(ctx context.Context, tx pgx.Tx, equipmentID uint64) error
}

type attachmentRepository struct {
	storage *pgxpool.Pool
}

func NewAttachmentRepository(storage *pgxpool.Pool) AttachmentRepositoryInterface {
	return &attachmentRepository{
		storage: storage,
	}
}

func (r *attachmentRepository) Create(ctx context.Context, tx pgx.Tx, attachment *entities.Attachment) (uint64, error) {
	query := `
		INSERT INTO ` + attachmentTable + `
		(equipment_id, file_name, file_size, file_type, file_path, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var attachmentID uint64
	err := tx.QueryRow(ctx, query,
		attachment.EquipmentID, attachment.FileName, attachment.FileSize,
		attachment.FileType, attachment.FilePath, attachment.UploadedBy,
	).Scan(&attachmentID)
	return attachmentID, err
}

func (r *attachmentRepository) FindAllByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.Attachment, error) {
	query := `
		SELECT ` + attachmentFields + `
		FROM ` + attachmentTable + `
		WHERE equipment_id = $1
		ORDER BY uploaded_at DESC`
	rows, err := r.storage.Query(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []entities.Attachment
	for rows.Next() {
		var a entities.Attachment
		if err := rows.Scan(&a.ID, &a.EquipmentID, &a.FileName, &a.FileSize, &a.FileType, &a.FilePath, &a.UploadedBy, &a.UploadedAt); err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}

func (r *attachmentRepository) FindByID(ctx context.Context, id uint64) (*entities.Attachment, error) {
	query := "SELECT " + attachmentFields + " FROM " + attachmentTable + " WHERE id = $1"
	var a entities.Attachment
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.EquipmentID, &a.FileName, &a.FileSize, &a.FileType, &a.FilePath, &a.UploadedBy, &a.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *attachmentRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	result, err := tx.Exec(ctx, "DELETE FROM "+attachmentTable+" WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *attachmentRepository) DeleteByEquipmentID(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	_, err := tx.Exec(ctx, "DELETE FROM "+attachmentTable+" WHERE equipment_id = $1", equipmentID)
	return err
}
