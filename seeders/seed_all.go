package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDemoData наполняет базу демонстрационными данными.
// Повторный запуск безопасен: существующие записи не трогаются.
func SeedDemoData(db *pgxpool.Pool) {
	ctx := context.Background()

	if err := seedEquipments(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка сидирования оборудования: %v", err)
	}
	if err := seedPurchases(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка сидирования закупок: %v", err)
	}

	log.Println("✅ Демонстрационные данные готовы.")
}
