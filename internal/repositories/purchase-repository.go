package repositories

import (
	"context"
	"errors"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/types"
	"asset-system/pkg/utils"
)

const purchaseTable = "purchases"
const purchaseFields = "id, description, brand, model, specs, location, urgency, status, requested_by, request_date, expected_date, supplier, observations, approved_by, approval_date, rejection_reason, created_at, updated_at"

type PurchaseRepositoryInterface interface {
	GetPurchases(ctx context.Context, filter types.Filter) ([]entities.Purchase, uint64, error)
	FindPurchase(ctx context.Context, id uint64) (*entities.Purchase, error)
	CreatePurchase(ctx context.Context, tx pgx.Tx, purchase *entities.Purchase) (uint64, error)
	UpdatePurchase(ctx context.Context, tx pgx.Tx, purchase *entities.Purchase) error
	DeletePurchase(ctx context.Context, tx pgx.Tx, id uint64) error
	GetStats(ctx context.Context) (*dto.PurchaseStatsDTO, error)
}

type PurchaseRepository struct {
	storage *pgxpool.Pool
}

func NewPurchaseRepository(storage *pgxpool.Pool) PurchaseRepositoryInterface {
	return &PurchaseRepository{
		storage: storage,
	}
}

var purchaseListSpec = ListSpec{
	Table:                purchaseTable,
	Columns:              purchaseFields,
	OrderBy:              "created_at DESC, id DESC",
	AllowedFilterColumns: []string{"status", "urgency", "requested_by"},
	AllowedSearchColumns: []string{"description", "brand", "model", "supplier"},
}

func scanPurchase(row pgx.Row) (*entities.Purchase, error) {
	var p entities.Purchase
	var brand, model, specs, location, supplier, observations, approvedBy, rejectionReason null.String
	var expectedDate, approvalDate null.Time

	err := row.Scan(
		&p.ID, &p.Description,
		&brand, &model, &specs, &location,
		&p.Urgency, &p.Status, &p.RequestedBy, &p.RequestDate,
		&expectedDate, &supplier, &observations,
		&approvedBy, &approvalDate, &rejectionReason,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Brand = utils.NullStringToPtr(brand)
	p.Model = utils.NullStringToPtr(model)
	p.Specs = utils.NullStringToPtr(specs)
	p.Location = utils.NullStringToPtr(location)
	p.Supplier = utils.NullStringToPtr(supplier)
	p.Observations = utils.NullStringToPtr(observations)
	p.ApprovedBy = utils.NullStringToPtr(approvedBy)
	p.RejectionReason = utils.NullStringToPtr(rejectionReason)
	if expectedDate.Valid {
		t := expectedDate.Time
		p.ExpectedDate = &t
	}
	if approvalDate.Valid {
		t := approvalDate.Time
		p.ApprovalDate = &t
	}

	return &p, nil
}

func (r *PurchaseRepository) GetPurchases(ctx context.Context, filter types.Filter) ([]entities.Purchase, uint64, error) {
	query, args, err := buildListQuery(purchaseListSpec, filter)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []entities.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := buildCountQuery(purchaseListSpec, filter)
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *PurchaseRepository) FindPurchase(ctx context.Context, id uint64) (*entities.Purchase, error) {
	query := "SELECT " + purchaseFields + " FROM " + purchaseTable + " WHERE id = $1"

	purchase, err := scanPurchase(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return purchase, nil
}

func (r *PurchaseRepository) CreatePurchase(ctx context.Context, tx pgx.Tx, purchase *entities.Purchase) (uint64, error) {
	query := `
		INSERT INTO ` + purchaseTable + `
		(description, brand, model, specs, location, urgency, status, requested_by, request_date, expected_date, supplier, observations)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	var id uint64
	err := tx.QueryRow(ctx, query,
		purchase.Description, purchase.Brand, purchase.Model, purchase.Specs,
		purchase.Location, purchase.Urgency, purchase.Status,
		purchase.RequestedBy, purchase.RequestDate, purchase.ExpectedDate,
		purchase.Supplier, purchase.Observations,
	).Scan(&id)
	return id, err
}

func (r *PurchaseRepository) UpdatePurchase(ctx context.Context, tx pgx.Tx, purchase *entities.Purchase) error {
	query := `
		UPDATE ` + purchaseTable + `
		SET description = $1, brand = $2, model = $3, specs = $4, location = $5,
			urgency = $6, status = $7, expected_date = $8, supplier = $9,
			observations = $10, approved_by = $11, approval_date = $12,
			rejection_reason = $13, updated_at = CURRENT_TIMESTAMP
		WHERE id = $14`

	result, err := tx.Exec(ctx, query,
		purchase.Description, purchase.Brand, purchase.Model, purchase.Specs,
		purchase.Location, purchase.Urgency, purchase.Status,
		purchase.ExpectedDate, purchase.Supplier, purchase.Observations,
		purchase.ApprovedBy, purchase.ApprovalDate, purchase.RejectionReason,
		purchase.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PurchaseRepository) DeletePurchase(ctx context.Context, tx pgx.Tx, id uint64) error {
	result, err := tx.Exec(ctx, "DELETE FROM "+purchaseTable+" WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PurchaseRepository) GetStats(ctx context.Context) (*dto.PurchaseStatsDTO, error) {
	query := "SELECT status, urgency, COUNT(*) FROM " + purchaseTable + " GROUP BY status, urgency"

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &dto.PurchaseStatsDTO{
		ByStatus:  make(map[string]uint64),
		ByUrgency: make(map[string]uint64),
	}
	for rows.Next() {
		var status, urgency string
		var count uint64
		if err := rows.Scan(&status, &urgency, &count); err != nil {
			return nil, err
		}
		stats.Total += count
		stats.ByStatus[status] += count
		stats.ByUrgency[urgency] += count
	}
	return stats, rows.Err()
}
