package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dapurcake/cakeshop-app/models"
	"github.com/dapurcake/cakeshop-app/services"
	"github.com/dapurcake/cakeshop-app/utils"
)

type PaymentController struct {
	DB       *gorm.DB
	Approval *services.OrderApproval
}

func NewPaymentController(db *gorm.DB, approval *services.OrderApproval) *PaymentController {
	return &PaymentController{DB: db, Approval: approval}
}

// GetPaymentByOrder -> pembayaran milik satu order
func (pc *PaymentController) GetPaymentByOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var payment models.Payment
	if err := pc.DB.Where("order_id = ?", id).First(&payment).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment detail", payment)
}

// UpdatePaymentStatus -> tulis status pembayaran. Transisi masuk ke
// partial/paid meng-auto-approve order (cek stok + deduct); kalau stok
// kurang, seluruh update ditolak dengan pesan blocking-nya.
func (pc *PaymentController) UpdatePaymentStatus(c *gin.Context) {
	if !requireRole(c, "admin", "staff") {
		return
	}

	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Status     string  `json:"status" binding:"required"`
		AmountPaid float64 `json:"amount_paid"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	avail, err := pc.Approval.ApplyPaymentStatus(uint(id), body.Status, body.AmountPaid)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	data := gin.H{"order_id": id, "status": body.Status}
	if avail != nil {
		data["warnings"] = avail.Warnings
	}
	utils.RespondJSON(c, http.StatusOK, "Payment updated", data)
}
