package config

import (
	"log"
	"os"
	"strconv"

	"food-ordering-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds everything the server and the client library read from the
// environment.
type Config struct {
	Port        string
	DBPath      string
	JWTSecret   []byte
	BaseURL     string // public base URL, embedded in order tracking QR codes
	StatePath   string // client-local state file (cart, session token)
	RedisAddr   string // optional: shared cart/session storage instead of the file
	KafkaBroker string // optional: order event stream
	DemoSeed    bool   // seed demo rows on startup

	DeliveryFee float64
	TaxRate     float64
}

// Load reads configuration from the environment, with .env support.
// A missing .env file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	fee, err := strconv.ParseFloat(getEnv("DELIVERY_FEE", "40"), 64)
	if err != nil {
		fee = 40
	}
	taxRate, err := strconv.ParseFloat(getEnv("TAX_RATE", "0.05"), 64)
	if err != nil {
		taxRate = 0.05
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DBPath:      getEnv("DB_PATH", "food_ordering.db"),
		JWTSecret:   []byte(getEnv("JWT_SECRET", "food_ordering_super_secret_2024")),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		StatePath:   getEnv("STATE_PATH", "food_app_state.json"),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		KafkaBroker: getEnv("KAFKA_BROKER", ""),
		DemoSeed:    getEnv("DEMO_SEED", "") == "true",
		DeliveryFee: fee,
		TaxRate:     taxRate,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// OpenDB connects to the sqlite database and migrates all models.
func OpenDB(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Food{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.DeliveryPartner{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated")
	return db
}
