package leave

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the leave panel API. The employee/admin split
// mirrors the backend's own surface so the panel paths stay recognizable.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	leaves := r.Group("/leaves")

	employee := leaves.Group("/employee")
	{
		employee.POST("/apply", handler.Submit)
		employee.GET("/my-leaves", handler.GetAll)
		employee.POST("/my-leaves/reconcile", handler.Reconcile)
		employee.POST("/my-leaves/:id/cancel", handler.Cancel)
		employee.POST("/my-leaves/:id/edit", handler.Edit)
		employee.GET("/balance", handler.Balances)
	}

	admin := leaves.Group("/admin")
	{
		admin.GET("/blackout-periods", handler.BlackoutPeriods)
		admin.PUT("/:id/status", handler.UpdateStatus)
	}
}
