package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
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

type AttachmentServiceInterface interface {
	GetByEquipmentID(ctx context.Context, equipmentID uint64) ([]dto.AttachmentResponseDTO, error)
	Upload(ctx context.Context, equipmentID uint64, fileHeader *multipart.FileHeader) (*dto.AttachmentResponseDTO, error)
	Delete(ctx context.Context, attachmentID uint64) error
}

type AttachmentService struct {
	attachmentRepo repositories.AttachmentRepositoryInterface
	equipmentRepo  repositories.EquipmentRepositoryInterface
	historyRepo    repositories.HistoryRepositoryInterface
	txManager      repositories.TxManagerInterface
	fileStorage    filestorage.FileStorageInterface
	maxFileSize    int64
	logger         *zap.Logger
}

func NewAttachmentService(
	attachmentRepo repositories.AttachmentRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	historyRepo repositories.HistoryRepositoryInterface,
	txManager repositories.TxManagerInterface,
	fileStorage filestorage.FileStorageInterface,
	maxFileSizeMB int64,
	logger *zap.Logger,
) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		equipmentRepo:  equipmentRepo,
		historyRepo:    historyRepo,
		txManager:      txManager,
		fileStorage:    fileStorage,
		maxFileSize:    maxFileSizeMB * 1024 * 1024,
		logger:         logger,
	}
}

func (s *AttachmentService) GetByEquipmentID(ctx context.Context, equipmentID uint64) ([]dto.AttachmentResponseDTO, error) {
	if _, err := s.equipmentRepo.FindEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.FindAllByEquipmentID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.AttachmentResponseDTO, 0, len(attachments))
	for i := range attachments {
		result = append(result, *attachmentToDTO(&attachments[i]))
	}
	return result, nil
}

// Upload сохраняет файл в хранилище, затем пишет запись вложения и
// событие истории в одной транзакции. Если транзакция не прошла,
// уже записанный файл удаляется.
func (s *AttachmentService) Upload(ctx context.Context, equipmentID uint64, fileHeader *multipart.FileHeader) (*dto.AttachmentResponseDTO, error) {
	if _, err := s.equipmentRepo.FindEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}

	if fileHeader.Size > s.maxFileSize {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("файл слишком большой: максимум %d МБ", s.maxFileSize/(1024*1024)))
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.logger.Error("не удалось открыть загружаемый файл", zap.Error(err))
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "не удалось прочитать файл", err, nil)
	}
	defer file.Close()

	fileType := fileHeader.Header.Get("Content-Type")
	if fileType == "" {
		fileType = "application/octet-stream"
	}

	relativePath := fmt.Sprintf("attachments/%d_%d_%s",
		equipmentID, time.Now().Unix(), filepath.Base(fileHeader.Filename))

	savedPath, err := s.fileStorage.Save(file, relativePath)
	if err != nil {
		s.logger.Error("не удалось сохранить файл вложения", zap.Error(err))
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "не удалось сохранить файл", err, nil)
	}

	userName := middleware.UserNameFromContext(ctx)

	attachment := &entities.Attachment{
		EquipmentID: equipmentID,
		FileName:    fileHeader.Filename,
		FileSize:    fileHeader.Size,
		FileType:    fileType,
		FilePath:    savedPath,
		UploadedBy:  userName,
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.attachmentRepo.Create(ctx, tx, attachment)
		if err != nil {
			return err
		}
		attachment.ID = id

		_, err = s.historyRepo.CreateInTx(ctx, tx, &entities.HistoryEntry{
			EquipmentID: &equipmentID,
			EntityType:  constants.EntityTypeEquipment,
			EntityID:    equipmentID,
			UserName:    userName,
			ChangeType:  constants.ChangeTypeFileAttached,
			NewValue:    &attachment.FileName,
		})
		return err
	})
	if err != nil {
		if delErr := s.fileStorage.Delete(savedPath); delErr != nil {
			s.logger.Warn("не удалось убрать файл после отката", zap.String("path", savedPath), zap.Error(delErr))
		}
		s.logger.Error("не удалось сохранить вложение", zap.Uint64("equipmentId", equipmentID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("вложение загружено",
		zap.Uint64("equipmentId", equipmentID),
		zap.Uint64("attachmentId", attachment.ID),
		zap.String("fileName", attachment.FileName),
	)

	return attachmentToDTO(attachment), nil
}

// Delete удаляет запись вложения и событие истории в одной транзакции,
// затем убирает файл из хранилища (ошибка удаления файла не откатывает БД).
func (s *AttachmentService) Delete(ctx context.Context, attachmentID uint64) error {
	attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		return err
	}

	equipmentID := attachment.EquipmentID
	userName := middleware.UserNameFromContext(ctx)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.attachmentRepo.Delete(ctx, tx, attachmentID); err != nil {
			return err
		}
		_, err := s.historyRepo.CreateInTx(ctx, tx, &entities.HistoryEntry{
			EquipmentID: &equipmentID,
			EntityType:  constants.EntityTypeEquipment,
			EntityID:    equipmentID,
			UserName:    userName,
			ChangeType:  constants.ChangeTypeFileRemoved,
			OldValue:    &attachment.FileName,
		})
		return err
	})
	if err != nil {
		s.logger.Error("не удалось удалить вложение", zap.Uint64("attachmentId", attachmentID), zap.Error(err))
		return err
	}

	if err := s.fileStorage.Delete(attachment.FilePath); err != nil {
		s.logger.Warn("не удалось удалить файл вложения", zap.String("path", attachment.FilePath), zap.Error(err))
	}

	s.logger.Info("вложение удалено",
		zap.Uint64("equipmentId", equipmentID),
		zap.Uint64("attachmentId", attachmentID),
	)
	return nil
}
