package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dapurcake/cakeshop-app/live"
	"github.com/dapurcake/cakeshop-app/models"
	"github.com/dapurcake/cakeshop-app/services"
	"github.com/dapurcake/cakeshop-app/utils"
)

type OrderController struct {
	DB       *gorm.DB
	Approval *services.OrderApproval
	Cache    *live.OrderCache
}

func NewOrderController(db *gorm.DB, approval *services.OrderApproval, cache *live.OrderCache) *OrderController {
	return &OrderController{DB: db, Approval: approval, Cache: cache}
}

// GetAllOrders -> list orders beserta line, payment dan customer
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.
		Preload("Customer").
		Preload("StandardLine.Cake").
		Preload("CustomCake.AssetUsages.Asset").
		Preload("Payment").
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderFeed -> snapshot cache yang direkonsiliasi change monitor;
// inilah daftar yang dilihat sesi admin secara real-time.
func (oc *OrderController) GetOrderFeed(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Order feed", oc.Cache.Snapshot())
}

// CreateOrder -> buat order baru (status='pending'). Body memuat tepat
// satu dari standard atau custom; line tidak bisa diubah setelah ini.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type standardReq struct {
		CakeID   uint `json:"cake_id" binding:"required"`
		Quantity int  `json:"quantity" binding:"required,gt=0"`
	}
	type usageReq struct {
		AssetID  uint `json:"asset_id" binding:"required"`
		Quantity int  `json:"quantity" binding:"required,gt=0"`
	}
	type customReq struct {
		AssetUsages []usageReq `json:"asset_usages" binding:"required,min=1"`
	}
	type reqBody struct {
		CustomerID     uint        `json:"customer_id" binding:"required"`
		DeliveryMethod string      `json:"delivery_method"`
		ScheduledAt    *time.Time  `json:"scheduled_at"`
		Total          float64     `json:"total"`
		Standard       *standardReq `json:"standard,omitempty"`
		Custom         *customReq   `json:"custom,omitempty"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if (body.Standard == nil) == (body.Custom == nil) {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("order harus punya tepat satu dari standard atau custom"))
		return
	}

	var customer models.Customer
	if err := oc.DB.First(&customer, body.CustomerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("customer %d tidak ditemukan", body.CustomerID))
		return
	}

	deliveryMethod := body.DeliveryMethod
	if deliveryMethod == "" {
		deliveryMethod = models.DeliveryMethodPickup
	}

	order := models.Order{
		CustomerID:     customer.ID,
		Status:         models.OrderStatusPending,
		DeliveryMethod: deliveryMethod,
		ScheduledAt:    body.ScheduledAt,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	tx := oc.DB.Begin()

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if body.Standard != nil {
		line := models.StandardLine{
			OrderID:   order.ID,
			CakeID:    body.Standard.CakeID,
			Quantity:  body.Standard.Quantity,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := tx.Create(&line).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	} else {
		custom := models.CustomCakeOrder{
			OrderID:   order.ID,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := tx.Create(&custom).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		for _, usage := range body.Custom.AssetUsages {
			au := models.AssetUsage{
				CustomCakeOrderID: custom.ID,
				AssetID:           usage.AssetID,
				Quantity:          usage.Quantity,
				CreatedAt:         time.Now(),
				UpdatedAt:         time.Now(),
			}
			if err := tx.Create(&au).Error; err != nil {
				tx.Rollback()
				utils.RespondError(c, http.StatusInternalServerError, err)
				return
			}
		}
	}

	payment := models.Payment{
		OrderID:   order.ID,
		Status:    models.PaymentStatusUnpaid,
		Total:     body.Total,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID -> detail 1 order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.
		Preload("Customer").
		Preload("StandardLine.Cake").
		Preload("CustomCake.AssetUsages.Asset").
		Preload("Payment").
		First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> transisi status lewat state machine. Approve
// memotong stok, unapprove mengembalikannya; cancel/deliver status saja.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	if !requireRole(c, "admin", "staff") {
		return
	}

	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Status string `json:"status" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	switch body.Status {
	case models.OrderStatusApproved:
		avail, err := oc.Approval.Approve(uint(id))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Order approved", gin.H{
			"order_id": id,
			"warnings": avail.Warnings,
		})
	case models.OrderStatusPending:
		if err := oc.Approval.Unapprove(uint(id)); err != nil {
			respondServiceError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Order reverted to pending", gin.H{"order_id": id})
	case models.OrderStatusCancelled:
		if err := oc.Approval.Cancel(uint(id)); err != nil {
			respondServiceError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Order cancelled", gin.H{"order_id": id})
	case models.OrderStatusDelivered:
		if err := oc.Approval.MarkDelivered(uint(id)); err != nil {
			respondServiceError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Order delivered", gin.H{"order_id": id})
	default:
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown status %q", body.Status))
	}
}

// CheckAvailability -> probe read-only; tidak menyentuh ledger.
func (oc *OrderController) CheckAvailability(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	order, err := oc.Approval.LoadOrder(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	avail, err := oc.Approval.Checker.Check(order)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Availability check", avail)
}

// UpdateOrderSchedule -> admin/staff mengubah delivery method / jadwal.
// Line order tidak pernah diubah lewat endpoint ini.
func (oc *OrderController) UpdateOrderSchedule(c *gin.Context) {
	if !requireRole(c, "admin", "staff") {
		return
	}

	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type reqBody struct {
		DeliveryMethod *string    `json:"delivery_method"`
		ScheduledAt    *time.Time `json:"scheduled_at"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.DeliveryMethod != nil {
		order.DeliveryMethod = *body.DeliveryMethod
	}
	if body.ScheduledAt != nil {
		order.ScheduledAt = body.ScheduledAt
	}
	order.UpdatedAt = time.Now()

	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// DeleteOrder
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	if !requireRole(c, "admin") {
		return
	}

	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	if err := oc.DB.Delete(&models.Order{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": id})
}
