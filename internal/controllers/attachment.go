package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-system/internal/services"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/utils"
)

type AttachmentController struct {
	attachmentService services.AttachmentServiceInterface
	logger            *zap.Logger
}

func NewAttachmentController(
	service services.AttachmentServiceInterface,
	logger *zap.Logger,
) *AttachmentController {
	return &AttachmentController{
		attachmentService: service,
		logger:            logger,
	}
}

func (c *AttachmentController) GetByEquipmentID(ctx echo.Context) error {
	equipmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.attachmentService.GetByEquipmentID(ctx.Request().Context(), equipmentID)
	if err != nil {
		c.logger.Error("GetByEquipmentID: ошибка при получении вложений",
			zap.Uint64("equipmentId", equipmentID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Вложения успешно получены", http.StatusOK)
}

func (c *AttachmentController) Upload(ctx echo.Context) error {
	equipmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Файл не передан в поле 'file'", err, nil),
			c.logger,
		)
	}

	res, err := c.attachmentService.Upload(ctx.Request().Context(), equipmentID, fileHeader)
	if err != nil {
		c.logger.Error("Upload: ошибка при загрузке вложения",
			zap.Uint64("equipmentId", equipmentID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Вложение успешно загружено", http.StatusCreated)
}

func (c *AttachmentController) Delete(ctx echo.Context) error {
	attachmentID, err := parseIDParam(ctx, "attachmentId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.attachmentService.Delete(ctx.Request().Context(), attachmentID); err != nil {
		c.logger.Error("Delete: ошибка при удалении вложения",
			zap.Uint64("attachmentId", attachmentID),
			zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Вложение успешно удалено", http.StatusOK)
}
