package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// FormatQty memformat kuantitas stok tanpa trailing zero (12.500 -> "12.5")
func FormatQty(qty decimal.Decimal) string {
	return qty.String()
}
