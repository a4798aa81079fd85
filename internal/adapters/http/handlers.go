package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spherecorp-kr/drcall-callcore/internal/app/orch"
)

func handleJoin(ctx context.Context, ctrl *orch.Controller, c *gin.Context) {
	if err := ctrl.Join(ctx); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func handleEnd(ctx context.Context, ctrl *orch.Controller, c *gin.Context) {
	ctrl.EndCall(ctx)
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func handleToggleCamera(ctrl *orch.Controller, c *gin.Context) {
	ctrl.ToggleCamera()
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func handleToggleMic(ctrl *orch.Controller, c *gin.Context) {
	ctrl.ToggleMic()
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

func handleState(ctrl *orch.Controller, c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.Snapshot())
}
