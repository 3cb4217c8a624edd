package routes

import (
	"github.com/labstack/echo/v4"

	"asset-system/internal/controllers"
)

func runEquipmentRouter(
	g *echo.Group,
	equipmentCtrl *controllers.EquipmentController,
	attachmentCtrl *controllers.AttachmentController,
	historyCtrl *controllers.HistoryController,
) {
	g.GET("/equipment", equipmentCtrl.GetEquipments)
	g.GET("/equipment/stats", equipmentCtrl.GetStats)
	g.GET("/equipment/next-asset-number", equipmentCtrl.NextAssetNumber)
	g.GET("/equipment/report", equipmentCtrl.GetReport)
	g.GET("/equipment/:id", equipmentCtrl.FindEquipment)
	g.POST("/equipment", equipmentCtrl.CreateEquipment)
	g.PUT("/equipment/:id", equipmentCtrl.UpdateEquipment)
	g.DELETE("/equipment/:id", equipmentCtrl.DeleteEquipment)
	g.POST("/equipment/:id/transfer", equipmentCtrl.Transfer)
	g.POST("/equipment/:id/maintenance", equipmentCtrl.RegisterMaintenance)

	g.GET("/equipment/:id/attachments", attachmentCtrl.GetByEquipmentID)
	g.POST("/equipment/:id/attachments", attachmentCtrl.Upload)
	g.DELETE("/equipment/attachments/:attachmentId", attachmentCtrl.Delete)

	g.GET("/equipment/:id/history", historyCtrl.GetByEquipmentID)
}
