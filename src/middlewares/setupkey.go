package middlewares

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// SetupKeyGuard protects the dev/ops endpoints (user provisioning, seat
// seeding). Without SETUP_KEY in the environment the whole surface is off.
func SetupKeyGuard(ctx *gin.Context) {
	setupKey := os.Getenv("SETUP_KEY")
	if setupKey == "" {
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "SETUP_KEY not configured"})
		return
	}
	key := ctx.Query("key")
	if key == "" {
		key = ctx.GetHeader("x-setup-key")
	}
	if key != setupKey {
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid setup key"})
		return
	}
}
