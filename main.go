package main

import (
	"log"
	"net/http"
	"os"

	"food-ordering-api/config"
	"food-ordering-api/events"
	"food-ordering-api/handlers"
	"food-ordering-api/routes"
	"food-ordering-api/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	// Set Gin mode
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.DebugMode)
	}

	cfg := config.Load()

	db := config.OpenDB(cfg.DBPath)
	st := store.New(db)
	if cfg.DemoSeed {
		if err := st.SeedDemo(); err != nil {
			log.Fatal("Failed to seed demo data:", err)
		}
	}

	var pub events.Publisher = events.Nop{}
	if cfg.KafkaBroker != "" {
		kp := events.NewKafkaPublisher(cfg.KafkaBroker, "order-events")
		defer kp.Close()
		pub = kp
		log.Println("Publishing order events to", cfg.KafkaBroker)
	}

	h := handlers.New(st, pub, cfg)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Ordering API",
			"version": "1.0.0",
		})
	})

	// Register all routes
	routes.SetupRoutes(r, h)

	// CORS for the browser frontend
	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}).Handler(r)

	log.Printf("Server running on http://localhost:%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
