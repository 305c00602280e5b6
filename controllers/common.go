package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dapurcake/cakeshop-app/services"
	"github.com/dapurcake/cakeshop-app/utils"
)

var ErrNoPermission = errors.New("you don't have permission to access this resource")

// respondServiceError memetakan error dari service ke kode HTTP.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case services.IsInsufficientStock(err):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrStockConflict):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// requireRole -> cek role dari context auth middleware.
func requireRole(c *gin.Context, roles ...string) bool {
	roleInterface, _ := c.Get("role")
	for _, r := range roles {
		if roleInterface == r {
			return true
		}
	}
	utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
	return false
}
