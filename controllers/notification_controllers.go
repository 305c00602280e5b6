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
	"github.com/dapurcake/cakeshop-app/utils"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

func validNotifCategory(category string) bool {
	switch category {
	case models.NotifCategoryOrder, models.NotifCategoryInventory,
		models.NotifCategoryPayment, models.NotifCategoryGeneral:
		return true
	}
	return false
}

// GetAllNotifications -> seluruh notifikasi, opsional filter
// ?category=order|inventory|payment|general
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	q := nc.DB.Order("created_at desc")
	if category := c.Query("category"); category != "" {
		if !validNotifCategory(category) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown category %q", category))
			return
		}
		q = q.Where("category = ?", category)
	}

	var notifs []models.Notification
	if err := q.Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All notifications", notifs)
}

// CreateNotification -> broadcast atau specific user
func (nc *NotificationController) CreateNotification(c *gin.Context) {
	type reqBody struct {
		UserID   *uint   `json:"user_id"`
		Category string  `json:"category"`
		Title    *string `json:"title"`
		Message  string  `json:"message" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Category == "" {
		body.Category = models.NotifCategoryGeneral
	}
	if !validNotifCategory(body.Category) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown category %q", body.Category))
		return
	}

	notif := models.Notification{
		UserID:    body.UserID,
		Category:  body.Category,
		Title:     body.Title,
		Message:   body.Message,
		CreatedAt: time.Now(),
	}

	if err := nc.DB.Create(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastStaffNotification(notif.Message)

	utils.RespondJSON(c, http.StatusCreated, "Notification created", notif)
}

// GetNotificationByID
func (nc *NotificationController) GetNotificationByID(c *gin.Context) {
	idStr := c.Param("notif_id")
	id, _ := strconv.Atoi(idStr)

	var notif models.Notification
	if err := nc.DB.First(&notif, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification detail", notif)
}

// MarkNotificationRead -> stempel read_at; idempotent.
func (nc *NotificationController) MarkNotificationRead(c *gin.Context) {
	idStr := c.Param("notif_id")
	id, _ := strconv.Atoi(idStr)

	var notif models.Notification
	if err := nc.DB.First(&notif, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if notif.ReadAt == nil {
		now := time.Now()
		notif.ReadAt = &now
		if err := nc.DB.Save(&notif).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Notification read", notif)
}
