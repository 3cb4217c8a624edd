package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/filestorage"
	"asset-system/pkg/middleware"
)

type TermServiceInterface interface {
	FindTerm(ctx context.Context, id uint64) (*dto.TermDTO, error)
	GetByEquipmentID(ctx context.Context, equipmentID uint64) ([]dto.TermDTO, error)
	CreateTerm(ctx context.Context, payload dto.CreateTermDTO) (*dto.TermDTO, error)
	UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateTermStatusDTO) (*dto.TermDTO, error)
	AttachPdf(ctx context.Context, id uint64, payload dto.AttachTermPdfDTO) (*dto.TermDTO, error)
	DeleteTerm(ctx context.Context, id uint64) error
}

type TermService struct {
	termRepo      repositories.TermRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	historyRepo   repositories.HistoryRepositoryInterface
	txManager     repositories.TxManagerInterface
	fileStorage   filestorage.FileStorageInterface
	logger        *zap.Logger
}

func NewTermService(
	termRepo repositories.TermRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	historyRepo repositories.HistoryRepositoryInterface,
	txManager repositories.TxManagerInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) *TermService {
	return &TermService{
		termRepo:      termRepo,
		equipmentRepo: equipmentRepo,
		historyRepo:   historyRepo,
		txManager:     txManager,
		fileStorage:   fileStorage,
		logger:        logger,
	}
}

func (s *TermService) FindTerm(ctx context.Context, id uint64) (*dto.TermDTO, error) {
	term, err := s.termRepo.FindTerm(ctx, id)
	if err != nil {
		return nil, err
	}
	return termToDTO(term), nil
}

func (s *TermService) GetByEquipmentID(ctx context.Context, equipmentID uint64) ([]dto.TermDTO, error) {
	if _, err := s.equipmentRepo.FindEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}

	terms, err := s.termRepo.FindAllByEquipmentID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.TermDTO, 0, len(terms))
	for i := range terms {
		result = append(result, *termToDTO(&terms[i]))
	}
	return result, nil
}

// CreateTerm создаёт терм ответственности. Если в запросе есть PDF в base64,
// файл сначала сохраняется в хранилище; при откате транзакции он удаляется.
func (s *TermService) CreateTerm(ctx context.Context, payload dto.CreateTermDTO) (*dto.TermDTO, error) {
	if _, err := s.equipmentRepo.FindEquipment(ctx, payload.EquipmentID); err != nil {
		return nil, err
	}

	termDate, err := time.Parse(dto.DateLayout, payload.TermDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("неверный формат даты терма")
	}

	status := constants.TermStatusDraft
	if payload.Status != nil {
		status = *payload.Status
	}

	var pdfPath *string
	if payload.PdfBase64 != nil && *payload.PdfBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(*payload.PdfBase64)
		if err != nil {
			return nil, apperrors.NewBadRequestError("не удалось декодировать PDF из base64")
		}

		relativePath := fmt.Sprintf("terms/termo_%d_%d.pdf", payload.EquipmentID, time.Now().Unix())
		savedPath, err := s.fileStorage.Save(bytes.NewReader(decoded), relativePath)
		if err != nil {
			s.logger.Error("не удалось сохранить PDF терма", zap.Error(err))
			return nil, err
		}
		pdfPath = &savedPath
	}

	term := &entities.ResponsibilityTerm{
		EquipmentID:     payload.EquipmentID,
		Responsible:     payload.Responsible,
		Email:           payload.Email,
		Phone:           payload.Phone,
		Department:      payload.Department,
		TermDate:        termDate,
		Observations:    payload.Observations,
		PdfURL:          pdfPath,
		ManualSignature: payload.ManualSignature,
		Status:          status,
	}

	userName := middleware.UserNameFromContext(ctx)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.termRepo.CreateTerm(ctx, tx, term)
		if err != nil {
			return err
		}
		term.ID = id

		_, err = s.historyRepo.CreateInTx(ctx, tx, &entities.HistoryEntry{
			EquipmentID: &term.EquipmentID,
			EntityType:  constants.EntityTypeTerm,
			EntityID:    id,
			UserName:    userName,
			ChangeType:  constants.ChangeTypeCreated,
			NewValue:    &term.Responsible,
		})
		return err
	})
	if err != nil {
		if pdfPath != nil {
			if delErr := s.fileStorage.Delete(*pdfPath); delErr != nil {
				s.logger.Warn("не удалось убрать PDF после отката", zap.String("path", *pdfPath), zap.Error(delErr))
			}
		}
		s.logger.Error("не удалось создать терм ответственности",
			zap.Uint64("equipmentId", payload.EquipmentID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("терм ответственности создан",
		zap.Uint64("id", term.ID),
		zap.Uint64("equipmentId", term.EquipmentID),
		zap.String("userName", userName),
	)

	return s.FindTerm(ctx, term.ID)
}

// UpdateStatus меняет статус терма и пишет событие истории
// с фактическим прежним статусом.
func (s *TermService) UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateTermStatusDTO) (*dto.TermDTO, error) {
	current, err := s.termRepo.FindTerm(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == payload.Status {
		return termToDTO(current), nil
	}

	previousStatus := current.Status
	userName := middleware.UserNameFromContext(ctx)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.termRepo.UpdateStatus(ctx, tx, id, payload.Status); err != nil {
			return err
		}
		statusLabel := "Status"
		_, err := s.historyRepo.CreateInTx(ctx, tx, &entities.HistoryEntry{
			EquipmentID: &current.EquipmentID,
			EntityType:  constants.EntityTypeTerm,
			EntityID:    id,
			UserName:    userName,
			ChangeType:  constants.ChangeTypeStatusChanged,
			Field:       &statusLabel,
			OldValue:    &previousStatus,
			NewValue:    &payload.Status,
		})
		return err
	})
	if err != nil {
		s.logger.Error("не удалось сменить статус терма", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("статус терма изменён",
		zap.Uint64("id", id),
		zap.String("from", previousStatus),
		zap.String("to", payload.Status),
	)

	return s.FindTerm(ctx, id)
}

// AttachPdf сохраняет подписанный PDF терма и обновляет ссылку на файл.
// Прежний PDF (например, неподписанный черновик) убирается из хранилища
// после коммита.
func (s *TermService) AttachPdf(ctx context.Context, id uint64, payload dto.AttachTermPdfDTO) (*dto.TermDTO, error) {
	current, err := s.termRepo.FindTerm(ctx, id)
	if err != nil {
		return nil, err
	}

	decoded, err := base64.StdEncoding.DecodeString(payload.PdfBase64)
	if err != nil {
		return nil, apperrors.NewBadRequestError("не удалось декодировать PDF из base64")
	}

	relativePath := fmt.Sprintf("terms/termo_%d_%d.pdf", current.EquipmentID, time.Now().Unix())
	savedPath, err := s.fileStorage.Save(bytes.NewReader(decoded), relativePath)
	if err != nil {
		s.logger.Error("не удалось сохранить PDF терма", zap.Error(err))
		return nil, err
	}

	userName := middleware.UserNameFromContext(ctx)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.termRepo.UpdatePdfURL(ctx, tx, id, savedPath); err != nil {
			return err
		}
		_, err := s.historyRepo.CreateInTx(ctx, tx, &entities.HistoryEntry{
			EquipmentID: &current.EquipmentID,
			EntityType:  constants.EntityTypeTerm,
			EntityID:    id,
			UserName:    userName,
			ChangeType:  constants.ChangeTypeFileAttached,
			OldValue:    current.PdfURL,
			NewValue:    &savedPath,
		})
		return err
	})
	if err != nil {
		if delErr := s.fileStorage.Delete(savedPath); delErr != nil {
			s.logger.Warn("не удалось убрать PDF после отката", zap.String("path", savedPath), zap.Error(delErr))
		}
		s.logger.Error("не удалось обновить PDF терма", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	if current.PdfURL != nil && *current.PdfURL != savedPath {
		if err := s.fileStorage.Delete(*current.PdfURL); err != nil {
			s.logger.Warn("не удалось удалить прежний PDF терма", zap.String("path", *current.PdfURL), zap.Error(err))
		}
	}

	s.logger.Info("PDF терма обновлён",
		zap.Uint64("id", id),
		zap.String("path", savedPath),
		zap.String("userName", userName),
	)

	return s.FindTerm(ctx, id)
}

// DeleteTerm удаляет терм и пишет событие удаления; PDF убирается
// из хранилища после коммита.
func (s *TermService) DeleteTerm(ctx context.Context, id uint64) error {
	current, err := s.termRepo.FindTerm(ctx, id)
	if err != nil {
		return err
	}

	userName := middleware.UserNameFromContext(ctx)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.termRepo.DeleteTerm(ctx, tx, id); err != nil {
			return err
		}
		_, err := s.historyRepo.CreateInTx(ctx, tx, &entities.HistoryEntry{
			EquipmentID: &current.EquipmentID,
			EntityType:  constants.EntityTypeTerm,
			EntityID:    id,
			UserName:    userName,
			ChangeType:  constants.ChangeTypeDeleted,
			OldValue:    &current.Responsible,
		})
		return err
	})
	if err != nil {
		s.logger.Error("не удалось удалить терм", zap.Uint64("id", id), zap.Error(err))
		return err
	}

	if current.PdfURL != nil {
		if err := s.fileStorage.Delete(*current.PdfURL); err != nil {
			s.logger.Warn("не удалось удалить PDF терма", zap.String("path", *current.PdfURL), zap.Error(err))
		}
	}

	s.logger.Info("терм ответственности удалён", zap.Uint64("id", id))
	return nil
}
