package repositories

import (
	"context"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"asset-system/internal/entities"
	"asset-system/pkg/utils"
)

const historyTable = "history_entries"
const historyFields = "id, equipment_id, entity_type, entity_id, user_name, change_type, field, old_value, new_value, created_at"

// HistoryRepositoryInterface — журнал аудита. Записи только добавляются;
// единственный путь удаления — каскад при удалении оборудования.
type HistoryRepositoryInterface interface {
	Create(ctx context.Context, entry *entities.HistoryEntry) (uint64, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, entry *entities.HistoryEntry) (uint64, error)
	GetAll(ctx context.Context, limit, offset int) ([]entities.HistoryEntry, error)
	GetRecent(ctx context.Context, limit int) ([]entities.HistoryEntry, error)
	GetByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.HistoryEntry, error)
	GetByEntityType(ctx context.Context, entityType string) ([]entities.HistoryEntry, error)
	DeleteByEquipmentID(ctx context.Context, tx pgx.Tx, equipmentID uint64) error
}

type HistoryRepository struct {
	storage *pgxpool.Pool
}

func NewHistoryRepository(storage *pgxpool.Pool) HistoryRepositoryInterface {
	return &HistoryRepository{storage: storage}
}

const historyInsertQuery = `
	INSERT INTO ` + historyTable + `
	(equipment_id, entity_type, entity_id, user_name, change_type, field, old_value, new_value)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id`

func (r *HistoryRepository) Create(ctx context.Context, entry *entities.HistoryEntry) (uint64, error) {
	return r.insert(ctx, r.storage, entry)
}

func (r *HistoryRepository) CreateInTx(ctx context.Context, tx pgx.Tx, entry *entities.HistoryEntry) (uint64, error) {
	return r.insert(ctx, tx, entry)
}

func (r *HistoryRepository) insert(ctx context.Context, q querier, entry *entities.HistoryEntry) (uint64, error) {
	var id uint64
	err := q.QueryRow(ctx, historyInsertQuery,
		entry.EquipmentID, entry.EntityType, entry.EntityID,
		entry.UserName, entry.ChangeType,
		entry.Field, entry.OldValue, entry.NewValue,
	).Scan(&id)
	return id, err
}

func (r *HistoryRepository) scanEntries(rows pgx.Rows) ([]entities.HistoryEntry, error) {
	defer rows.Close()

	var entries []entities.HistoryEntry
	for rows.Next() {
		var e entities.HistoryEntry
		var field, oldValue, newValue null.String
		if err := rows.Scan(
			&e.ID, &e.EquipmentID, &e.EntityType, &e.EntityID,
			&e.UserName, &e.ChangeType,
			&field, &oldValue, &newValue, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Field = utils.NullStringToPtr(field)
		e.OldValue = utils.NullStringToPtr(oldValue)
		e.NewValue = utils.NullStringToPtr(newValue)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Записи всегда читаются от новых к старым.
const historyOrder = " ORDER BY created_at DESC, id DESC"

func (r *HistoryRepository) GetAll(ctx context.Context, limit, offset int) ([]entities.HistoryEntry, error) {
	query := "SELECT " + historyFields + " FROM " + historyTable + historyOrder + " LIMIT $1 OFFSET $2"
	rows, err := r.storage.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return r.scanEntries(rows)
}

func (r *HistoryRepository) GetRecent(ctx context.Context, limit int) ([]entities.HistoryEntry, error) {
	query := "SELECT " + historyFields + " FROM " + historyTable + historyOrder + " LIMIT $1"
	rows, err := r.storage.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return r.scanEntries(rows)
}

func (r *HistoryRepository) GetByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.HistoryEntry, error) {
	query := "SELECT " + historyFields + " FROM " + historyTable + " WHERE equipment_id = $1" + historyOrder
	rows, err := r.storage.Query(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	return r.scanEntries(rows)
}

func (r *HistoryRepository) GetByEntityType(ctx context.Context, entityType string) ([]entities.HistoryEntry, error) {
	query := "SELECT " + historyFields + " FROM " + historyTable + " WHERE entity_type = $1" + historyOrder
	rows, err := r.storage.Query(ctx, query, entityType)
	if err != nil {
		return nil, err
	}
	return r.scanEntries(rows)
}

func (r *HistoryRepository) DeleteByEquipmentID(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	_, err := tx.Exec(ctx, "DELETE FROM "+historyTable+" WHERE equipment_id = $1", equipmentID)
	return err
}
