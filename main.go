package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/dapurcake/cakeshop-app/database"
	"github.com/dapurcake/cakeshop-app/live"
	"github.com/dapurcake/cakeshop-app/models"
	"github.com/dapurcake/cakeshop-app/router"
	"github.com/dapurcake/cakeshop-app/services"
	"github.com/dapurcake/cakeshop-app/utils"
)

func main() {
	// Load .env di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	db, err := database.Connect()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Simpan koneksi database untuk dipakai controller
	utils.InitDB(db)

	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// State yang dishare antara router (mutasi lokal) dan change
	// monitor (echo dari change feed)
	suppressor := live.NewSuppressor()
	cache := live.NewOrderCache()

	// Change monitor dengan interval pendek supaya sesi admin cepat
	// melihat perubahan dari client lain
	monitor := services.NewChangeMonitor(db, cache, suppressor)
	monitor.Interval = 500 * time.Millisecond
	monitor.Start()
	defer monitor.Stop()

	r := router.SetupRouter(utils.GetDB(), suppressor, cache)
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Ingredient{},
		&models.InventoryEntry{},
		&models.Cake{},
		&models.CakeRecipeItem{},
		&models.Asset{},
		&models.AssetRecipeItem{},
		&models.Order{},
		&models.StandardLine{},
		&models.CustomCakeOrder{},
		&models.AssetUsage{},
		&models.Payment{},
		&models.Notification{},
		&models.DBChange{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	// Pasang trigger pengisi db_changes
	if err := database.ExecuteTriggers(db); err != nil {
		utils.ErrorLogger.Printf("Error setting up triggers: %v", err)
	}
}
