package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dapurcake/cakeshop-app/controllers"
	"github.com/dapurcake/cakeshop-app/models"
	"github.com/dapurcake/cakeshop-app/utils"
)

func setupNotificationTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:notifs_ctrl?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	if err := db.AutoMigrate(&models.User{}, &models.Notification{}); err != nil {
		panic(err)
	}
	return db
}

func setupNotificationRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	notifCtrl := controllers.NewNotificationController(db)
	router.GET("/notifications", notifCtrl.GetAllNotifications)
	router.POST("/notifications", notifCtrl.CreateNotification)
	router.PATCH("/notifications/:notif_id/read", notifCtrl.MarkNotificationRead)

	return router
}

func TestCreateAndFilterNotificationsByCategory(t *testing.T) {
	utils.InitLogger()

	db := setupNotificationTestDB()
	router := setupNotificationRouter(db)

	for _, payload := range []map[string]string{
		{"category": "inventory", "message": "Stok Flour menipis"},
		{"category": "order", "message": "Pesanan baru #1 masuk"},
	} {
		payloadBytes, _ := json.Marshal(payload)
		req, _ := http.NewRequest("POST", "/notifications", bytes.NewBuffer(payloadBytes))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	// Tanpa category -> default general.
	payloadBytes, _ := json.Marshal(map[string]string{"message": "Pengumuman libur"})
	req, _ := http.NewRequest("POST", "/notifications", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req, _ = http.NewRequest("GET", "/notifications?category=inventory", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	notif := data[0].(map[string]interface{})
	assert.Equal(t, "inventory", notif["category"])
	assert.Equal(t, "Stok Flour menipis", notif["message"])

	// Kategori ngawur ditolak.
	req, _ = http.NewRequest("GET", "/notifications?category=apaan", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkNotificationRead(t *testing.T) {
	utils.InitLogger()

	db := setupNotificationTestDB()
	router := setupNotificationRouter(db)

	payloadBytes, _ := json.Marshal(map[string]string{
		"category": "payment",
		"message":  "Order #9 lunas",
	})
	req, _ := http.NewRequest("POST", "/notifications", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["data"].(map[string]interface{})["id"].(float64)
	idStr := "/notifications/" + strconv.Itoa(int(id)) + "/read"

	req, _ = http.NewRequest("PATCH", idStr, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var readResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &readResp))
	notif := readResp["data"].(map[string]interface{})
	assert.NotNil(t, notif["read_at"])
	firstReadAt := notif["read_at"]

	// Idempotent: patch kedua tidak menggeser stempel.
	req, _ = http.NewRequest("PATCH", idStr, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &readResp))
	assert.Equal(t, firstReadAt, readResp["data"].(map[string]interface{})["read_at"])
}
