package seeders

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type equipmentSeed struct {
	AssetNumber     string
	Description     string
	Brand           string
	Model           string
	Status          string
	Location        string
	Responsible     string
	AcquisitionDate string
	Value           float64
}

var equipmentsData = []equipmentSeed{
	{"TOP-0001", "Ноутбук для разработки", "Dell", "Latitude 5540", "active", "Головной офис", "А. Каримов", "2024-02-12", 1250.00},
	{"TOP-0002", "Монитор 27\"", "LG", "27UL500", "active", "Головной офис", "А. Каримов", "2024-02-12", 280.00},
	{"TOP-0003", "МФУ отдела кадров", "HP", "LaserJet M428", "maintenance", "Офис 2", "М. Рахимова", "2023-09-01", 430.00},
	{"TOP-0004", "Сервер резервного копирования", "Supermicro", "SYS-5019C", "active", "Серверная", "Д. Назаров", "2022-11-20", 3100.00},
	{"TOP-0005", "Проектор переговорной", "Epson", "EB-W52", "deactivated", "Переговорная 1", "М. Рахимова", "2021-05-14", 520.00},
}

func seedEquipments(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'equipments'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO equipments
		(asset_number, description, brand, model, status, location, responsible, acquisition_date, value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (asset_number) DO NOTHING`

	for _, e := range equipmentsData {
		acquisitionDate, err := time.Parse("2006-01-02", e.AcquisitionDate)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query,
			e.AssetNumber, e.Description, e.Brand, e.Model, e.Status,
			e.Location, e.Responsible, acquisitionDate, e.Value,
		); err != nil {
			return err
		}
	}

	log.Printf("    - Вставлено/проверено %d единиц оборудования.", len(equipmentsData))
	return tx.Commit(ctx)
}
