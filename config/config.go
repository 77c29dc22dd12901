package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"platewise-backend/models"
	"platewise-backend/utils"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

var KV utils.KVStore

// LoadEnv reads .env if present. Absence is fine in deployed environments
// where real env vars are set.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
}

func InitDB() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

// InitKV picks Redis when REDIS_ADDR is set, otherwise an in-process store.
func InitKV() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Printf("REDIS_ADDR not set, session state kept in memory")
		KV = utils.NewMemoryStore()
		return
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}
	KV = utils.NewRedisStore(addr, os.Getenv("REDIS_PASSWORD"), db)
}

// FoodAPIBaseURL resolves the upstream catalog base URL, defaulting to the
// local loopback the dev stack runs on.
func FoodAPIBaseURL() string {
	if v := os.Getenv("FOOD_API_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8000"
}
