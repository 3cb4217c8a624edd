package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/controllers"
	"asset-system/internal/repositories"
	"asset-system/internal/services"
	"asset-system/pkg/config"
	"asset-system/pkg/filestorage"
	"asset-system/pkg/logger"
)

type Loggers struct {
	Main      *zap.Logger
	Equipment *zap.Logger
	Purchase  *zap.Logger
	History   *zap.Logger
}

func NewLoggers(base *zap.Logger) *Loggers {
	return &Loggers{
		Main:      base,
		Equipment: logger.Named(base, "equipment"),
		Purchase:  logger.Named(base, "purchase"),
		History:   logger.Named(base, "history"),
	}
}

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, loggers *Loggers, cfg *config.Config) {
	loggers.Main.Info("InitRouter: регистрация маршрутов")

	api := e.Group("/api")

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.BasePath)
	if err != nil {
		loggers.Main.Fatal("не удалось создать файловое хранилище", zap.Error(err))
	}
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- РЕПОЗИТОРИИ ---
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	purchaseRepo := repositories.NewPurchaseRepository(dbConn)
	termRepo := repositories.NewTermRepository(dbConn)
	historyRepo := repositories.NewHistoryRepository(dbConn)
	attachmentRepo := repositories.NewAttachmentRepository(dbConn)

	// --- СЕРВИСЫ ---
	equipmentService := services.NewEquipmentService(
		equipmentRepo, attachmentRepo, termRepo, historyRepo, cacheRepo,
		txManager, fileStorage, cfg.Asset.Prefix, cfg.Redis.StatsTTL, loggers.Equipment,
	)
	purchaseService := services.NewPurchaseService(
		purchaseRepo, equipmentRepo, historyRepo, cacheRepo,
		txManager, equipmentService, cfg.Redis.StatsTTL, loggers.Purchase,
	)
	termService := services.NewTermService(
		termRepo, equipmentRepo, historyRepo, txManager, fileStorage, loggers.Equipment,
	)
	historyService := services.NewHistoryService(historyRepo, loggers.History)
	attachmentService := services.NewAttachmentService(
		attachmentRepo, equipmentRepo, historyRepo, txManager,
		fileStorage, cfg.Upload.MaxFileSizeMB, loggers.Equipment,
	)

	// --- КОНТРОЛЛЕРЫ ---
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, loggers.Equipment)
	purchaseCtrl := controllers.NewPurchaseController(purchaseService, loggers.Purchase)
	termCtrl := controllers.NewTermController(termService, loggers.Equipment)
	historyCtrl := controllers.NewHistoryController(historyService, loggers.History)
	attachmentCtrl := controllers.NewAttachmentController(attachmentService, loggers.Equipment)
	healthCtrl := controllers.NewHealthController(dbConn, redisClient, loggers.Main)

	// --- РОУТЕРЫ ---
	runEquipmentRouter(api, equipmentCtrl, attachmentCtrl, historyCtrl)
	runPurchaseRouter(api, purchaseCtrl)
	runTermRouter(api, termCtrl)
	runHistoryRouter(api, historyCtrl)

	e.GET("/health", healthCtrl.Check)
	e.Static("/uploads", cfg.Upload.BasePath)

	loggers.Main.Info("InitRouter: маршруты зарегистрированы")
}
