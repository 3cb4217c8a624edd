package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
	"asset-system/pkg/diff"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/middleware"
	"asset-system/pkg/types"
	"asset-system/pkg/utils"
)

const purchaseStatsCacheKey = "purchase:stats"

type PurchaseServiceInterface interface {
	GetPurchases(ctx context.Context, filter types.Filter) ([]dto.PurchaseDTO, uint64, error)
	FindPurchase(ctx context.Context, id uint64) (*dto.PurchaseDTO, error)
	CreatePurchase(ctx context.Context, payload dto.CreatePurchaseDTO) (*dto.PurchaseDTO, error)
	UpdatePurchase(ctx context.Context, id uint64, payload dto.UpdatePurchaseDTO) (*dto.PurchaseDTO, error)
	DeletePurchase(ctx context.Context, id uint64) error
	Approve(ctx context.Context, id uint64) (*dto.PurchaseDTO, error)
	Reject(ctx context.Context, id uint64, payload dto.RejectPurchaseDTO) (*dto.PurchaseDTO, error)
	Acquire(ctx context.Context, id uint64) (*dto.PurchaseDTO, error)
	ConvertToEquipment(ctx context.Context, id uint64, payload dto.ConvertPurchaseDTO) (*dto.EquipmentDTO, error)
	GetStats(ctx context.Context) (*dto.PurchaseStatsDTO, error)
}

type PurchaseService struct {
	purchaseRepo     repositories.PurchaseRepositoryInterface
	equipmentRepo    repositories.EquipmentRepositoryInterface
	historyRepo      repositories.HistoryRepositoryInterface
	cacheRepo        repositories.CacheRepositoryInterface
	txManager        repositories.TxManagerInterface
	equipmentService EquipmentServiceInterface
	statsTTL         time.Duration
	logger           *zap.Logger
}

func NewPurchaseService(
	purchaseRepo repositories.PurchaseRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	historyRepo repositories.HistoryRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	txManager repositories.TxManagerInterface,
	equipmentService EquipmentServiceInterface,
	statsTTL time.Duration,
	logger *zap.Logger,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo:     purchaseRepo,
		equipmentRepo:    equipmentRepo,
		historyRepo:      historyRepo,
		cacheRepo:        cacheRepo,
		txManager:        txManager,
		equipmentService: equipmentService,
		statsTTL:         statsTTL,
		logger:           logger,
	}
}

func (s *PurchaseService) GetPurchases(ctx context.Context, filter types.Filter) ([]dto.PurchaseDTO, uint64, error) {
	list, total, err := s.purchaseRepo.GetPurchases(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.PurchaseDTO, 0, len(list))
	for i := range list {
		result = append(result, *purchaseToDTO(&list[i]))
	}
	return result, total, nil
}

func (s *PurchaseService) FindPurchase(ctx context.Context, id uint64) (*dto.PurchaseDTO, error) {
	purchase, err := s.purchaseRepo.FindPurchase(ctx, id)
	if err != nil {
		return nil, err
	}
	return purchaseToDTO(purchase), nil
}

func (s *PurchaseService) CreatePurchase(ctx context.Context, payload dto.CreatePurchaseDTO) (*dto.PurchaseDTO, error) {
	requestDate, err := time.Parse(dto.DateLayout, payload.RequestDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("неверный формат даты заявки")
	}
	expectedDate, err := parseOptDate(payload.ExpectedDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("неверный формат ожидаемой даты")
	}

	purchase := &entities.Purchase{
		Description:  payload.Description,
		Brand:        payload.Brand,
		Model:        payload.Model,
		Specs:        payload.Specs,
		Location:     payload.Location,
		Urgency:      payload.Urgency,
		Status:       constants.PurchaseStatusPending,
		RequestedBy:  payload.RequestedBy,
		RequestDate:  requestDate,
		ExpectedDate: expectedDate,
		Supplier:     payload.Supplier,
		Observations: payload.Observations,
	}

	userName := middleware.UserNameFromContext(ctx)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.purchaseRepo.CreatePurchase(ctx, tx, purchase)
		if err != nil {
			return err
		}
		purchase.ID = id

		_, err = s.historyRepo.CreateInTx(ctx, tx, &entities.HistoryEntry{
			EntityType: constants.EntityTypePurchase,
			EntityID:   id,
			UserName:   userName,
			ChangeType: constants.ChangeTypeCreated,
			NewValue:   &purchase.Description,
		})
		return err
	})
	if err != nil {
		s.logger.Error("не удалось создать закупку", zap.Error(err))
		return nil, err
	}

	s.invalidateStats(ctx)
	s.logger.Info("закупка создана", zap.Uint64("id", purchase.ID), zap.String("userName", userName))

	return s.FindPurchase(ctx, purchase.ID)
}

func purchaseDiff(current *entities.Purchase, payload dto.UpdatePurchaseDTO) (*entities.Purchase, *diff.Set, error) {
	expectedDate, err := parseOptDate(payload.ExpectedDate)
	if err != nil {
		return nil, nil, apperrors.NewBadRequestError("неверный формат ожидаемой даты")
	}

	merged := *current
	d := diff.NewSet()

	merged.Description = d.Text("description", "Description", current.Description, payload.Description)
	merged.Brand = d.OptText("brand", "Brand", current.Brand, payload.Brand)
	merged.Model = d.OptText("model", "Model", current.Model, payload.Model)
	merged.Specs = d.OptText("specs", "Specifications", current.Specs, payload.Specs)
	merged.Location = d.OptText("location", "Location", current.Location, payload.Location)
	merged.Urgency = d.Text("urgency", "Urgency", current.Urgency, payload.Urgency)
	merged.ExpectedDate = d.OptDate("expectedDate", "Expected date", current.ExpectedDate, expectedDate)
	merged.Supplier = d.OptText("supplier", "Supplier", current.Supplier, payload.Supplier)
	merged.Observations = d.OptText("observations", "Observations", current.Observations, payload.Observations)

	return &merged, d, nil
}

func (s *PurchaseService) UpdatePurchase(ctx context.Context, id uint64, payload dto.UpdatePurchaseDTO) (*dto.PurchaseDTO, error) {
	current, err := s.purchaseRepo.FindPurchase(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, changes, err := purchaseDiff(current, payload)
	if err != nil {
		return nil, err
	}
	if !changes.HasChanges() {
		return purchaseToDTO(current), nil
	}

	userName := middleware.UserNameFromContext(ctx)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.purchaseRepo.UpdatePurchase(ctx, tx, merged); err != nil {
			return err
		}
		for _, change := range changes.Changes() {
			_, err := s.historyRepo.CreateInTx(ctx, tx, &entities.HistoryEntry{
				EntityType: constants.EntityTypePurchase,
				EntityID:   id,
				UserName:   userName,
				ChangeType: constants.ChangeTypeEdited,
				Field:      &change.Label,
				OldValue:   &change.OldValue,
				NewValue:   &change.NewValue,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("не удалось обновить закупку", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidateStats(ctx)
	return s.FindPurchase(ctx, id)
}

func (s *PurchaseService) DeletePurchase(ctx context.Context, id uint64) error {
	current, err := s.purchaseRepo.FindPurchase(ctx, id)
	if err != nil {
		return err
	}

	userName := middleware.UserNameFromContext(ctx)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.purchaseRepo.DeletePurchase(ctx, tx, id); err != nil {
			return err
		}
		_, err := s.historyRepo.CreateInTx(ctx, tx, &entities.HistoryEntry{
			EntityType: constants.EntityTypePurchase,
			EntityID:   id,
			UserName:   userName,
			ChangeType: constants.ChangeTypeDeleted,
			OldValue:   &current.Description,
		})
		return err
	})
	if err != nil {
		s.logger.Error("не удалось удалить закупку", zap.Uint64("id", id), zap.Error(err))
		return err
	}

	s.invalidateStats(ctx)
	s.logger.Info("закупка удалена", zap.Uint64("id", id))
	return nil
}

// transition переводит закупку в новый статус и пишет событие истории
// с фактическим прежним статусом, каким бы он ни был.
func (s *PurchaseService) transition(ctx context.Context, id uint64, newStatus string, mutate func(p *entities.Purchase)) (*dto.PurchaseDTO, error) {
	current, err := s.purchaseRepo.FindPurchase(ctx, id)
	if err != nil {
		return nil, err
	}

	previousStatus := current.Status
	merged := *current
	merged.Status = newStatus
	if mutate != nil {
		mutate(&merged)
	}

	userName := middleware.UserNameFromContext(ctx)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.purchaseRepo.UpdatePurchase(ctx, tx, &merged); err != nil {
			return err
		}
		statusLabel := "Status"
		_, err := s.historyRepo.CreateInTx(ctx, tx, &entities.HistoryEntry{
			EntityType: constants.EntityTypePurchase,
			EntityID:   id,
			UserName:   userName,
			ChangeType: constants.ChangeTypeStatusChanged,
			Field:      &statusLabel,
			OldValue:   &previousStatus,
			NewValue:   &merged.Status,
		})
		return err
	})
	if err != nil {
		s.logger.Error("не удалось сменить статус закупки",
			zap.Uint64("id", id), zap.String("status", newStatus), zap.Error(err))
		return nil, err
	}

	s.invalidateStats(ctx)
	s.logger.Info("статус закупки изменён",
		zap.Uint64("id", id),
		zap.String("from", previousStatus),
		zap.String("to", newStatus),
		zap.String("userName", userName),
	)

	return s.FindPurchase(ctx, id)
}

func (s *PurchaseService) Approve(ctx context.Context, id uint64) (*dto.PurchaseDTO, error) {
	userName := middleware.UserNameFromContext(ctx)
	now := time.Now()
	return s.transition(ctx, id, constants.PurchaseStatusApproved, func(p *entities.Purchase) {
		p.ApprovedBy = &userName
		p.ApprovalDate = &now
	})
}

func (s *PurchaseService) Reject(ctx context.Context, id uint64, payload dto.RejectPurchaseDTO) (*dto.PurchaseDTO, error) {
	// Причина проверяется до любых записей: отказ без причины не оставляет следов.
	reason := strings.TrimSpace(payload.Reason)
	if reason == "" {
		return nil, apperrors.ErrRejectReasonRequired
	}
	userName := middleware.UserNameFromContext(ctx)
	now := time.Now()
	return s.transition(ctx, id, constants.PurchaseStatusRejected, func(p *entities.Purchase) {
		p.RejectionReason = &reason
		p.ApprovedBy = &userName
		p.ApprovalDate = &now
	})
}

func (s *PurchaseService) Acquire(ctx context.Context, id uint64) (*dto.PurchaseDTO, error) {
	return s.transition(ctx, id, constants.PurchaseStatusAcquired, nil)
}

// ConvertToEquipment создаёт оборудование на основе закупки и переводит
// её в статус acquired — всё одной транзакцией. Явные переопределения
// из запроса имеют приоритет над полями закупки.
func (s *PurchaseService) ConvertToEquipment(ctx context.Context, id uint64, payload dto.ConvertPurchaseDTO) (*dto.EquipmentDTO, error) {
	purchase, err := s.purchaseRepo.FindPurchase(ctx, id)
	if err != nil {
		return nil, err
	}

	description := purchase.Description
	if payload.Description != nil {
		description = *payload.Description
	}

	location := utils.SafeDeref(purchase.Location)
	if payload.Location != nil {
		location = *payload.Location
	}
	if location == "" {
		return nil, apperrors.NewBadRequestError("нужно указать локацию оборудования")
	}

	responsible := utils.SafeDeref(payload.Responsible)
	if responsible == "" {
		return nil, apperrors.NewBadRequestError("нужно указать ответственного за оборудование")
	}

	acquisitionDate := time.Now()
	if payload.AcquisitionDate != nil {
		parsed, err := time.Parse(dto.DateLayout, *payload.AcquisitionDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("неверный формат даты приобретения")
		}
		acquisitionDate = parsed
	}
	invoiceDate, err := parseOptDate(payload.InvoiceDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("неверный формат даты счёта")
	}

	assetNumber, err := s.equipmentService.ResolveAssetNumber(ctx, payload.AssetNumber)
	if err != nil {
		return nil, err
	}

	equipment := &entities.Equipment{
		AssetNumber:     assetNumber,
		Description:     description,
		Brand:           firstNonNil(payload.Brand, purchase.Brand),
		Model:           firstNonNil(payload.Model, purchase.Model),
		Specs:           firstNonNil(payload.Specs, purchase.Specs),
		Status:          constants.EquipmentStatusActive,
		Location:        location,
		Responsible:     responsible,
		AcquisitionDate: acquisitionDate,
		InvoiceDate:     invoiceDate,
		Value:           utils.SafeDeref(payload.Value),
	}

	previousStatus := purchase.Status
	mergedPurchase := *purchase
	mergedPurchase.Status = constants.PurchaseStatusAcquired

	userName := middleware.UserNameFromContext(ctx)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		equipmentID, err := s.equipmentRepo.CreateEquipment(ctx, tx, equipment)
		if err != nil {
			return err
		}
		equipment.ID = equipmentID

		if err := s.purchaseRepo.UpdatePurchase(ctx, tx, &mergedPurchase); err != nil {
			return err
		}

		if _, err := s.historyRepo.CreateInTx(ctx, tx, &entities.HistoryEntry{
			EquipmentID: &equipmentID,
			EntityType:  constants.EntityTypeEquipment,
			EntityID:    equipmentID,
			UserName:    userName,
			ChangeType:  constants.ChangeTypeCreated,
			NewValue:    &equipment.AssetNumber,
		}); err != nil {
			return err
		}

		statusLabel := "Status"
		acquired := constants.PurchaseStatusAcquired
		_, err = s.historyRepo.CreateInTx(ctx, tx, &entities.HistoryEntry{
			EntityType: constants.EntityTypePurchase,
			EntityID:   id,
			UserName:   userName,
			ChangeType: constants.ChangeTypeStatusChanged,
			Field:      &statusLabel,
			OldValue:   &previousStatus,
			NewValue:   &acquired,
		})
		return err
	})
	if err != nil {
		s.logger.Error("не удалось конвертировать закупку в оборудование",
			zap.Uint64("purchaseId", id), zap.Error(err))
		return nil, err
	}

	s.invalidateStats(ctx)
	s.logger.Info("закупка конвертирована в оборудование",
		zap.Uint64("purchaseId", id),
		zap.Uint64("equipmentId", equipment.ID),
		zap.String("assetNumber", equipment.AssetNumber),
	)

	return s.equipmentService.FindEquipment(ctx, equipment.ID)
}

func (s *PurchaseService) GetStats(ctx context.Context) (*dto.PurchaseStatsDTO, error) {
	if cached, err := s.cacheRepo.Get(ctx, purchaseStatsCacheKey); err == nil && cached != "" {
		var stats dto.PurchaseStatsDTO
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.purchaseRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(stats); err == nil {
		if err := s.cacheRepo.Set(ctx, purchaseStatsCacheKey, string(encoded), s.statsTTL); err != nil {
			s.logger.Debug("не удалось закешировать статистику закупок", zap.Error(err))
		}
	}
	return stats, nil
}

func (s *PurchaseService) invalidateStats(ctx context.Context) {
	if err := s.cacheRepo.Del(ctx, purchaseStatsCacheKey, equipmentStatsCacheKey); err != nil {
		s.logger.Debug("не удалось сбросить кеш статистики закупок", zap.Error(err))
	}
}

func firstNonNil(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
