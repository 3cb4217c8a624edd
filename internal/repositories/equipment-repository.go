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

const equipmentTable = "equipments"
const equipmentFields = "id, asset_number, description, brand, model, specs, status, location, responsible, acquisition_date, invoice_date, value, maintenance_description, created_at, updated_at"

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	FindByAssetNumber(ctx context.Context, normalizedTag string) (*entities.Equipment, error)
	HighestAssetNumber(ctx context.Context, prefix string) (string, error)
	CreateEquipment(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) (uint64, error)
	UpdateEquipment(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) error
	DeleteEquipment(ctx context.Context, tx pgx.Tx, id uint64) error
	GetStats(ctx context.Context) (*dto.EquipmentStatsDTO, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{
		storage: storage,
	}
}

var equipmentListSpec = ListSpec{
	Table:                equipmentTable,
	Columns:              equipmentFields,
	OrderBy:              "created_at DESC, id DESC",
	AllowedFilterColumns: []string{"status", "location", "responsible"},
	AllowedSearchColumns: []string{"asset_number", "description", "brand", "model"},
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	var brand, model, specs, maintenance null.String
	var invoiceDate null.Time

	err := row.Scan(
		&e.ID, &e.AssetNumber, &e.Description,
		&brand, &model, &specs,
		&e.Status, &e.Location, &e.Responsible,
		&e.AcquisitionDate, &invoiceDate, &e.Value,
		&maintenance, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Brand = utils.NullStringToPtr(brand)
	e.Model = utils.NullStringToPtr(model)
	e.Specs = utils.NullStringToPtr(specs)
	e.MaintenanceDescription = utils.NullStringToPtr(maintenance)
	if invoiceDate.Valid {
		t := invoiceDate.Time
		e.InvoiceDate = &t
	}

	return &e, nil
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	query, args, err := buildListQuery(equipmentListSpec, filter)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []entities.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := buildCountQuery(equipmentListSpec, filter)
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := "SELECT " + equipmentFields + " FROM " + equipmentTable + " WHERE id = $1"

	equipment, err := scanEquipment(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return equipment, nil
}

// FindByAssetNumber ищет по нормализованному номеру: сравнение
// регистро- и пробело-независимое.
func (r *EquipmentRepository) FindByAssetNumber(ctx context.Context, normalizedTag string) (*entities.Equipment, error) {
	query := "SELECT " + equipmentFields + " FROM " + equipmentTable + " WHERE UPPER(TRIM(asset_number)) = $1"

	equipment, err := scanEquipment(r.storage.QueryRow(ctx, query, normalizedTag))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return equipment, nil
}

// HighestAssetNumber возвращает номер с максимальным числовым суффиксом.
// Сортировка по извлечённому числу, а не по строке: лексикографический
// порядок ломается, как только счётчик уходит за 4 цифры.
func (r *EquipmentRepository) HighestAssetNumber(ctx context.Context, prefix string) (string, error) {
	query := `
		SELECT asset_number
		FROM ` + equipmentTable + `
		WHERE asset_number ~ ('^' || $1 || '-[0-9]+$')
		ORDER BY (substring(asset_number from '[0-9]+$'))::int DESC
		LIMIT 1`

	var tag string
	err := r.storage.QueryRow(ctx, query, prefix).Scan(&tag)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return tag, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) (uint64, error) {
	query := `
		INSERT INTO ` + equipmentTable + `
		(asset_number, description, brand, model, specs, status, location, responsible, acquisition_date, invoice_date, value, maintenance_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	var id uint64
	err := tx.QueryRow(ctx, query,
		equipment.AssetNumber, equipment.Description,
		equipment.Brand, equipment.Model, equipment.Specs,
		equipment.Status, equipment.Location, equipment.Responsible,
		equipment.AcquisitionDate, equipment.InvoiceDate, equipment.Value,
		equipment.MaintenanceDescription,
	).Scan(&id)
	return id, err
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) error {
	query := `
		UPDATE ` + equipmentTable + `
		SET description = $1, brand = $2, model = $3, specs = $4, status = $5,
			location = $6, responsible = $7, acquisition_date = $8, invoice_date = $9,
			value = $10, maintenance_description = $11, updated_at = CURRENT_TIMESTAMP
		WHERE id = $12`

	result, err := tx.Exec(ctx, query,
		equipment.Description, equipment.Brand, equipment.Model, equipment.Specs,
		equipment.Status, equipment.Location, equipment.Responsible,
		equipment.AcquisitionDate, equipment.InvoiceDate, equipment.Value,
		equipment.MaintenanceDescription,
		equipment.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, tx pgx.Tx, id uint64) error {
	result, err := tx.Exec(ctx, "DELETE FROM "+equipmentTable+" WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) GetStats(ctx context.Context) (*dto.EquipmentStatsDTO, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'maintenance'),
			COUNT(*) FILTER (WHERE status = 'deactivated'),
			COALESCE(SUM(value), 0)
		FROM ` + equipmentTable

	var stats dto.EquipmentStatsDTO
	err := r.storage.QueryRow(ctx, query).Scan(
		&stats.Total, &stats.Active, &stats.Maintenance, &stats.Deactivated, &stats.TotalValue,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
