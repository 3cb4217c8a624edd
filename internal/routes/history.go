package routes

import (
	"github.com/labstack/echo/v4"

	"asset-system/internal/controllers"
)

func runHistoryRouter(g *echo.Group, historyCtrl *controllers.HistoryController) {
	g.GET("/history", historyCtrl.GetAll)
	g.GET("/history/recent", historyCtrl.GetRecent)
	g.GET("/history/equipment/:id", historyCtrl.GetByEquipmentID)
	g.GET("/history/entity/:entityType", historyCtrl.GetByEntityType)
	g.POST("/history", historyCtrl.Create)
}
