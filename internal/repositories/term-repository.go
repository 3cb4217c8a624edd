package repositories

import (
	"context"
	"errors"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/utils"
)

const termTable = "responsibility_terms"
const termFields = "id, equipment_id, responsible, email, phone, department, term_date, observations, pdf_url, manual_signature, status, created_at, updated_at"

type TermRepositoryInterface interface {
	FindTerm(ctx context.Context, id uint64) (*entities.ResponsibilityTerm, error)
	FindAllByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.ResponsibilityTerm, error)
	CreateTerm(ctx context.Context, tx pgx.Tx, term *entities.ResponsibilityTerm) (uint64, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, status string) error
	UpdatePdfURL(ctx context.Context, tx pgx.Tx, id uint64, pdfURL string) error
	DeleteTerm(ctx context.Context, tx pgx.Tx, id uint64) error
	DeleteByEquipmentID(ctx context.Context, tx pgx.Tx, equipmentID uint64) error
}

type TermRepository struct {
	storage *pgxpool.Pool
}

func NewTermRepository(storage *pgxpool.Pool) TermRepositoryInterface {
	return &TermRepository{storage: storage}
}

func scanTerm(row pgx.Row) (*entities.ResponsibilityTerm, error) {
	var t entities.ResponsibilityTerm
	var email, phone, department, observations, pdfURL, signature null.String

	err := row.Scan(
		&t.ID, &t.EquipmentID, &t.Responsible,
		&email, &phone, &department,
		&t.TermDate, &observations, &pdfURL, &signature,
		&t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Email = utils.NullStringToPtr(email)
	t.Phone = utils.NullStringToPtr(phone)
	t.Department = utils.NullStringToPtr(department)
	t.Observations = utils.NullStringToPtr(observations)
	t.PdfURL = utils.NullStringToPtr(pdfURL)
	t.ManualSignature = utils.NullStringToPtr(signature)

	return &t, nil
}

func (r *TermRepository) FindTerm(ctx context.Context, id uint64) (*entities.ResponsibilityTerm, error) {
	query := "SELECT " + termFields + " FROM " + termTable + " WHERE id = $1"

	term, err := scanTerm(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return term, nil
}

func (r *TermRepository) FindAllByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.ResponsibilityTerm, error) {
	query := "SELECT " + termFields + " FROM " + termTable + " WHERE equipment_id = $1 ORDER BY created_at DESC"

	rows, err := r.storage.Query(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []entities.ResponsibilityTerm
	for rows.Next() {
		t, err := scanTerm(rows)
		if err != nil {
			return nil, err
		}
		terms = append(terms, *t)
	}
	return terms, rows.Err()
}

func (r *TermRepository) CreateTerm(ctx context.Context, tx pgx.Tx, term *entities.ResponsibilityTerm) (uint64, error) {
	query := `
		INSERT INTO ` + termTable + `
		(equipment_id, responsible, email, phone, department, term_date, observations, pdf_url, manual_signature, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	var id uint64
	err := tx.QueryRow(ctx, query,
		term.EquipmentID, term.Responsible, term.Email, term.Phone, term.Department,
		term.TermDate, term.Observations, term.PdfURL, term.ManualSignature, term.Status,
	).Scan(&id)
	return id, err
}

func (r *TermRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	result, err := tx.Exec(ctx,
		"UPDATE "+termTable+" SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		status, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TermRepository) UpdatePdfURL(ctx context.Context, tx pgx.Tx, id uint64, pdfURL string) error {
	result, err := tx.Exec(ctx,
		"UPDATE "+termTable+" SET pdf_url = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		pdfURL, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TermRepository) DeleteTerm(ctx context.Context, tx pgx.Tx, id uint64) error {
	result, err := tx.Exec(ctx, "DELETE FROM "+termTable+" WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TermRepository) DeleteByEquipmentID(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	_, err := tx.Exec(ctx, "DELETE FROM "+termTable+" WHERE equipment_id = $1", equipmentID)
	return err
}
