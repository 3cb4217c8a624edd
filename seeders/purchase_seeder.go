package seeders

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type purchaseSeed struct {
	Description string
	Urgency     string
	Status      string
	RequestedBy string
	RequestDate string
	Supplier    string
}

var purchasesData = []purchaseSeed{
	{"Ноутбуки для нового отдела (5 шт.)", "high", "pending", "Д. Назаров", "2025-07-01", "TechSupply"},
	{"Источник бесперебойного питания для серверной", "critical", "approved", "Д. Назаров", "2025-06-15", "PowerLine"},
	{"Кресла офисные (10 шт.)", "low", "pending", "М. Рахимова", "2025-07-20", ""},
	{"Коммутатор 48 портов", "medium", "acquired", "Д. Назаров", "2025-05-02", "NetPro"},
}

func seedPurchases(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'purchases'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var count int
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM purchases").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Println("    - Таблица 'purchases' уже наполнена, пропускаем.")
		return nil
	}

	query := `INSERT INTO purchases
		(description, urgency, status, requested_by, request_date, supplier)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))`

	for _, p := range purchasesData {
		requestDate, err := time.Parse("2006-01-02", p.RequestDate)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query,
			p.Description, p.Urgency, p.Status, p.RequestedBy, requestDate, p.Supplier,
		); err != nil {
			return err
		}
	}

	log.Printf("    - Вставлено %d закупок.", len(purchasesData))
	return tx.Commit(ctx)
}
