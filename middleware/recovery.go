package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IbroIT/SU-back-back-sub001/utils"
)

func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		utils.LogPanic(recovered, c.Request.Method+" "+c.FullPath())

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"result":  nil,
			"error":   "Internal server error",
		})
	})
}
