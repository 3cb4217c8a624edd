package routes

import (
	"github.com/labstack/echo/v4"

	"asset-system/internal/controllers"
)

func runPurchaseRouter(g *echo.Group, purchaseCtrl *controllers.PurchaseController) {
	g.GET("/purchases", purchaseCtrl.GetPurchases)
	g.GET("/purchases/stats", purchaseCtrl.GetStats)
	g.GET("/purchases/:id", purchaseCtrl.FindPurchase)
	g.POST("/purchases", purchaseCtrl.CreatePurchase)
	g.PUT("/purchases/:id", purchaseCtrl.UpdatePurchase)
	g.DELETE("/purchases/:id", purchaseCtrl.DeletePurchase)

	g.POST("/purchases/:id/approve", purchaseCtrl.Approve)
	g.POST("/purchases/:id/reject", purchaseCtrl.Reject)
	g.POST("/purchases/:id/acquire", purchaseCtrl.Acquire)
	g.POST("/purchases/:id/convert-to-equipment", purchaseCtrl.ConvertToEquipment)
}
