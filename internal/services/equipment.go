package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/assetnumber"
	"asset-system/pkg/constants"
	"asset-system/pkg/diff"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/filestorage"
	"asset-system/pkg/middleware"
	"asset-system/pkg/types"
)

const equipmentStatsCacheKey = "equipment:stats"

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, id uint64) error
	Transfer(ctx context.Context, id uint64, payload dto.TransferEquipmentDTO) (*dto.EquipmentDTO, error)
	RegisterMaintenance(ctx context.Context, id uint64, payload dto.RegisterMaintenanceDTO) (*dto.EquipmentDTO, error)
	NextAssetNumber(ctx context.Context) (string, error)
	ResolveAssetNumber(ctx context.Context, supplied *string) (string, error)
	GetStats(ctx context.Context) (*dto.EquipmentStatsDTO, error)
}

type EquipmentService struct {
	equipmentRepo  repositories.EquipmentRepositoryInterface
	attachmentRepo repositories.AttachmentRepositoryInterface
	termRepo       repositories.TermRepositoryInterface
	historyRepo    repositories.HistoryRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	txManager      repositories.TxManagerInterface
	fileStorage    filestorage.FileStorageInterface
	assetPrefix    string
	statsTTL       time.Duration
	logger         *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	attachmentRepo repositories.AttachmentRepositoryInterface,
	termRepo repositories.TermRepositoryInterface,
	historyRepo repositories.HistoryRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	txManager repositories.TxManagerInterface,
	fileStorage filestorage.FileStorageInterface,
	assetPrefix string,
	statsTTL time.Duration,
	logger *zap.Logger,
) *EquipmentService {
	return &EquipmentService{
		equipmentRepo:  equipmentRepo,
		attachmentRepo: attachmentRepo,
		termRepo:       termRepo,
		historyRepo:    historyRepo,
		cacheRepo:      cacheRepo,
		txManager:      txManager,
		fileStorage:    fileStorage,
		assetPrefix:    assetPrefix,
		statsTTL:       statsTTL,
		logger:         logger,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	list, total, err := s.equipmentRepo.GetEquipments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.EquipmentDTO, 0, len(list))
	for i := range list {
		result = append(result, *equipmentToDTO(&list[i]))
	}
	return result, total, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	return equipmentToDTO(equipment), nil
}

// NextAssetNumber выдаёт следующий свободный инвентарный номер.
func (s *EquipmentService) NextAssetNumber(ctx context.Context) (string, error) {
	highest, err := s.equipmentRepo.HighestAssetNumber(ctx, s.assetPrefix)
	if err != nil {
		return "", err
	}
	return assetnumber.Next(s.assetPrefix, highest), nil
}

// ResolveAssetNumber возвращает номер для нового оборудования:
// переданный клиентом — после проверки формата и уникальности,
// иначе следующий по последовательности.
func (s *EquipmentService) ResolveAssetNumber(ctx context.Context, supplied *string) (string, error) {
	if supplied == nil || assetnumber.Normalize(*supplied) == "" {
		return s.NextAssetNumber(ctx)
	}

	normalized := assetnumber.Normalize(*supplied)
	if !assetnumber.IsValid(s.assetPrefix, normalized) {
		return "", apperrors.ErrAssetNumberMalformed
	}

	_, err := s.equipmentRepo.FindByAssetNumber(ctx, normalized)
	if err == nil {
		return "", apperrors.ErrAssetNumberTaken
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", err
	}
	return normalized, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	assetNumber, err := s.ResolveAssetNumber(ctx, payload.AssetNumber)
	if err != nil {
		return nil, err
	}

	acquisitionDate, err := time.Parse(dto.DateLayout, payload.AcquisitionDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("неверный формат даты приобретения")
	}
	invoiceDate, err := parseOptDate(payload.InvoiceDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("неверный формат даты счёта")
	}

	status := constants.EquipmentStatusActive
	if payload.Status != nil {
		status = *payload.Status
	}

	equipment := &entities.Equipment{
		AssetNumber:     assetNumber,
		Description:     payload.Description,
		Brand:           payload.Brand,
		Model:           payload.Model,
		Specs:           payload.Specs,
		Status:          status,
		Location:        payload.Location,
		Responsible:     payload.Responsible,
		AcquisitionDate: acquisitionDate,
		InvoiceDate:     invoiceDate,
		Value:           payload.Value,
	}

	userName := middleware.UserNameFromContext(ctx)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.equipmentRepo.CreateEquipment(ctx, tx, equipment)
		if err != nil {
			return err
		}
		equipment.ID = id

		_, err = s.historyRepo.CreateInTx(ctx, tx, &entities.HistoryEntry{
			EquipmentID: &id,
			EntityType:  constants.EntityTypeEquipment,
			EntityID:    id,
			UserName:    userName,
			ChangeType:  constants.ChangeTypeCreated,
		})
		return err
	})
	if err != nil {
		s.logger.Error("не удалось создать оборудование", zap.Error(err))
		return nil, err
	}

	s.invalidateStats(ctx)
	s.logger.Info("оборудование создано",
		zap.Uint64("id", equipment.ID),
		zap.String("assetNumber", equipment.AssetNumber),
		zap.String("userName", userName),
	)

	return s.FindEquipment(ctx, equipment.ID)
}

// equipmentDiff сливает частичное обновление с текущим состоянием
// и возвращает набор изменений для журнала истории.
func equipmentDiff(current *entities.Equipment, payload dto.UpdateEquipmentDTO) (*entities.Equipment, *diff.Set, error) {
	acquisitionDate, err := parseOptDate(payload.AcquisitionDate)
	if err != nil {
		return nil, nil, apperrors.NewBadRequestError("неверный формат даты приобретения")
	}
	invoiceDate, err := parseOptDate(payload.InvoiceDate)
	if err != nil {
		return nil, nil, apperrors.NewBadRequestError("неверный формат даты счёта")
	}

	merged := *current
	d := diff.NewSet()

	merged.Description = d.Text("description", "Description", current.Description, payload.Description)
	merged.Brand = d.OptText("brand", "Brand", current.Brand, payload.Brand)
	merged.Model = d.OptText("model", "Model", current.Model, payload.Model)
	merged.Specs = d.OptText("specs", "Specifications", current.Specs, payload.Specs)
	merged.Status = d.Text("status", "Status", current.Status, payload.Status)
	merged.Location = d.Text("location", "Location", current.Location, payload.Location)
	merged.Responsible = d.Text("responsible", "Responsible", current.Responsible, payload.Responsible)
	merged.AcquisitionDate = d.Date("acquisitionDate", "Acquisition date", current.AcquisitionDate, acquisitionDate)
	merged.InvoiceDate = d.OptDate("invoiceDate", "Invoice date", current.InvoiceDate, invoiceDate)
	merged.Value = d.Number("value", "Value", current.Value, payload.Value)
	merged.MaintenanceDescription = d.OptText("maintenanceDescription", "Maintenance description", current.MaintenanceDescription, payload.MaintenanceDescription)

	return &merged, d, nil
}

func (s *EquipmentService) historyFromChange(equipmentID uint64, userName string, change diff.Change) *entities.HistoryEntry {
	changeType := constants.ChangeTypeEdited
	if change.Field == "status" {
		changeType = constants.ChangeTypeStatusChanged
	}
	return &entities.HistoryEntry{
		EquipmentID: &equipmentID,
		EntityType:  constants.EntityTypeEquipment,
		EntityID:    equipmentID,
		UserName:    userName,
		ChangeType:  changeType,
		Field:       &change.Label,
		OldValue:    &change.OldValue,
		NewValue:    &change.NewValue,
	}
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	current, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, changes, err := equipmentDiff(current, payload)
	if err != nil {
		return nil, err
	}
	if !changes.HasChanges() {
		// Нечего менять — и в журнале ничего не появляется.
		return equipmentToDTO(current), nil
	}

	userName := middleware.UserNameFromContext(ctx)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.equipmentRepo.UpdateEquipment(ctx, tx, merged); err != nil {
			return err
		}
		for _, change := range changes.Changes() {
			if _, err := s.historyRepo.CreateInTx(ctx, tx, s.historyFromChange(id, userName, change)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("не удалось обновить оборудование", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidateStats(ctx)
	s.logger.Info("оборудование обновлено",
		zap.Uint64("id", id),
		zap.Int("changes", changes.Len()),
		zap.String("userName", userName),
	)

	return s.FindEquipment(ctx, id)
}

// Transfer — перемещение оборудования: меняет локацию и/или ответственного
// через тот же diff-путь, что и обычное обновление.
func (s *EquipmentService) Transfer(ctx context.Context, id uint64, payload dto.TransferEquipmentDTO) (*dto.EquipmentDTO, error) {
	if payload.Location == nil && payload.Responsible == nil {
		return nil, apperrors.NewBadRequestError("нужно указать локацию или ответственного")
	}
	return s.UpdateEquipment(ctx, id, dto.UpdateEquipmentDTO{
		Location:    payload.Location,
		Responsible: payload.Responsible,
	})
}

// RegisterMaintenance переводит оборудование в статус maintenance
// и пишет одно событие обслуживания в журнал.
func (s *EquipmentService) RegisterMaintenance(ctx context.Context, id uint64, payload dto.RegisterMaintenanceDTO) (*dto.EquipmentDTO, error) {
	current, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	previousStatus := current.Status
	merged := *current
	merged.Status = constants.EquipmentStatusMaintenance
	merged.MaintenanceDescription = &payload.Description

	userName := middleware.UserNameFromContext(ctx)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.equipmentRepo.UpdateEquipment(ctx, tx, &merged); err != nil {
			return err
		}
		statusLabel := "Status"
		newStatus := constants.EquipmentStatusMaintenance
		_, err := s.historyRepo.CreateInTx(ctx, tx, &entities.HistoryEntry{
			EquipmentID: &id,
			EntityType:  constants.EntityTypeEquipment,
			EntityID:    id,
			UserName:    userName,
			ChangeType:  constants.ChangeTypeMaintenance,
			Field:       &statusLabel,
			OldValue:    &previousStatus,
			NewValue:    &newStatus,
		})
		return err
	})
	if err != nil {
		s.logger.Error("не удалось зарегистрировать обслуживание", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidateStats(ctx)
	return s.FindEquipment(ctx, id)
}

// DeleteEquipment удаляет оборудование каскадом: вложения, термы, история —
// все записи в одной транзакции, после чего пишется одна синтетическая
// запись об удалении (equipment_id = NULL — самой сущности уже нет).
// Файлы в хранилище удаляются после коммита, ошибки только логируются.
func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	current, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return err
	}

	attachments, err := s.attachmentRepo.FindAllByEquipmentID(ctx, id)
	if err != nil {
		return err
	}
	terms, err := s.termRepo.FindAllByEquipmentID(ctx, id)
	if err != nil {
		return err
	}

	userName := middleware.UserNameFromContext(ctx)
	deletedTrace := fmt.Sprintf("%s - %s", current.AssetNumber, current.Description)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.historyRepo.DeleteByEquipmentID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.attachmentRepo.DeleteByEquipmentID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.termRepo.DeleteByEquipmentID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.equipmentRepo.DeleteEquipment(ctx, tx, id); err != nil {
			return err
		}

		_, err := s.historyRepo.CreateInTx(ctx, tx, &entities.HistoryEntry{
			EquipmentID: nil,
			EntityType:  constants.EntityTypeEquipment,
			EntityID:    id,
			UserName:    userName,
			ChangeType:  constants.ChangeTypeDeleted,
			OldValue:    &deletedTrace,
		})
		return err
	})
	if err != nil {
		s.logger.Error("не удалось удалить оборудование", zap.Uint64("id", id), zap.Error(err))
		return err
	}

	for _, a := range attachments {
		if err := s.fileStorage.Delete(a.FilePath); err != nil {
			s.logger.Warn("не удалось удалить файл вложения", zap.String("path", a.FilePath), zap.Error(err))
		}
	}
	for _, t := range terms {
		if t.PdfURL != nil {
			if err := s.fileStorage.Delete(*t.PdfURL); err != nil {
				s.logger.Warn("не удалось удалить PDF терма", zap.String("path", *t.PdfURL), zap.Error(err))
			}
		}
	}

	s.invalidateStats(ctx)
	s.logger.Info("оборудование удалено", zap.Uint64("id", id), zap.String("trace", deletedTrace))
	return nil
}

func (s *EquipmentService) GetStats(ctx context.Context) (*dto.EquipmentStatsDTO, error) {
	if cached, err := s.cacheRepo.Get(ctx, equipmentStatsCacheKey); err == nil && cached != "" {
		var stats dto.EquipmentStatsDTO
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.equipmentRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(stats); err == nil {
		if err := s.cacheRepo.Set(ctx, equipmentStatsCacheKey, string(encoded), s.statsTTL); err != nil {
			s.logger.Debug("не удалось закешировать статистику", zap.Error(err))
		}
	}
	return stats, nil
}

func (s *EquipmentService) invalidateStats(ctx context.Context) {
	if err := s.cacheRepo.Del(ctx, equipmentStatsCacheKey); err != nil {
		s.logger.Debug("не удалось сбросить кеш статистики", zap.Error(err))
	}
}

func parseOptDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
