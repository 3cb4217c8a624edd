package services

import (
	"context"

	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/middleware"
)

type HistoryServiceInterface interface {
	GetAll(ctx context.Context, limit, offset int) ([]dto.HistoryEntryDTO, error)
	GetRecent(ctx context.Context, limit int) ([]dto.HistoryEntryDTO, error)
	GetByEquipmentID(ctx context.Context, equipmentID uint64) ([]dto.HistoryEntryDTO, error)
	GetByEntityType(ctx context.Context, entityType string) ([]dto.HistoryEntryDTO, error)
	Create(ctx context.Context, payload dto.CreateHistoryDTO) (*dto.HistoryEntryDTO, error)
}

type HistoryService struct {
	repo   repositories.HistoryRepositoryInterface
	logger *zap.Logger
}

func NewHistoryService(repo repositories.HistoryRepositoryInterface, logger *zap.Logger) HistoryServiceInterface {
	return &HistoryService{repo: repo, logger: logger}
}

const (
	defaultHistoryLimit = 200
	maxHistoryLimit     = 500
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		return maxHistoryLimit
	}
	return limit
}

func (s *HistoryService) GetAll(ctx context.Context, limit, offset int) ([]dto.HistoryEntryDTO, error) {
	if offset < 0 {
		offset = 0
	}
	entries, err := s.repo.GetAll(ctx, clampLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	return historyListToDTO(entries), nil
}

func (s *HistoryService) GetRecent(ctx context.Context, limit int) ([]dto.HistoryEntryDTO, error) {
	entries, err := s.repo.GetRecent(ctx, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return historyListToDTO(entries), nil
}

func (s *HistoryService) GetByEquipmentID(ctx context.Context, equipmentID uint64) ([]dto.HistoryEntryDTO, error) {
	entries, err := s.repo.GetByEquipmentID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	return historyListToDTO(entries), nil
}

func (s *HistoryService) GetByEntityType(ctx context.Context, entityType string) ([]dto.HistoryEntryDTO, error) {
	entries, err := s.repo.GetByEntityType(ctx, entityType)
	if err != nil {
		return nil, err
	}
	return historyListToDTO(entries), nil
}

// Create — ручная запись в журнал (POST /history). Остальные записи
// делают сервисы сущностей внутри своих транзакций.
func (s *HistoryService) Create(ctx context.Context, payload dto.CreateHistoryDTO) (*dto.HistoryEntryDTO, error) {
	userName := middleware.UserNameFromContext(ctx)
	if payload.UserName != nil && *payload.UserName != "" {
		userName = *payload.UserName
	}

	entry := &entities.HistoryEntry{
		EquipmentID: payload.EquipmentID,
		EntityType:  payload.EntityType,
		EntityID:    payload.EntityID,
		UserName:    userName,
		ChangeType:  payload.ChangeType,
		Field:       payload.Field,
		OldValue:    payload.OldValue,
		NewValue:    payload.NewValue,
	}

	id, err := s.repo.Create(ctx, entry)
	if err != nil {
		s.logger.Error("не удалось записать событие в журнал", zap.Error(err))
		return nil, err
	}
	entry.ID = id

	stored, err := s.repo.GetRecent(ctx, 1)
	if err == nil && len(stored) > 0 && stored[0].ID == id {
		return historyToDTO(&stored[0]), nil
	}
	return historyToDTO(entry), nil
}
