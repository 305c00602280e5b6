package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/dapurcake/cakeshop-app/utils"
)

// WebSocketAuthMiddleware -> browser tidak bisa kirim header saat
// upgrade, jadi token lewat query string
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("role", claims.Role)
		c.Set("user_id", claims.UserID)

		c.Next()
	}
}
