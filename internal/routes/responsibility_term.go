package routes

import (
	"github.com/labstack/echo/v4"

	"asset-system/internal/controllers"
)

func runTermRouter(g *echo.Group, termCtrl *controllers.TermController) {
	g.GET("/responsibility-terms/equipment/:equipmentId", termCtrl.GetByEquipmentID)
	g.GET("/responsibility-terms/:id", termCtrl.FindTerm)
	g.POST("/responsibility-terms", termCtrl.CreateTerm)
	g.PATCH("/responsibility-terms/:id/status", termCtrl.UpdateStatus)
	g.PATCH("/responsibility-terms/:id/pdf", termCtrl.AttachPdf)
	g.DELETE("/responsibility-terms/:id", termCtrl.DeleteTerm)
}
