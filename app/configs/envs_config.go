package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	defaultShippingFlatFee     = "4.99"
	defaultOrderNumberAttempts = 3
)

type ENV struct {
	DBHost              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBPort              string
	Port                string
	APP_ENV             string
	AppAuthKey          string
	AppEncKey           string
	AppCSRFKey          string
	LogLevel            string
	CurrencySymbol      string
	ShippingFlatFee     decimal.Decimal
	OrderNumberAttempts int
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBHost:              os.Getenv("DB_HOST"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBPort:              os.Getenv("DB_PORT"),
		Port:                getEnv("APP_PORT", ":8080"),
		APP_ENV:             getEnv("APP_ENV", "production"),
		AppAuthKey:          os.Getenv("APP_AUTH_KEY"),
		AppEncKey:           os.Getenv("APP_ENC_KEY"),
		AppCSRFKey:          os.Getenv("APP_CSRF_KEY"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		CurrencySymbol:      getEnv("CURRENCY_SYMBOL", "$"),
		ShippingFlatFee:     getDecimalEnv("SHIPPING_FLAT_FEE", defaultShippingFlatFee),
		OrderNumberAttempts: getIntEnv("ORDER_NUMBER_MAX_ATTEMPTS", defaultOrderNumberAttempts),
	}

}

func (e ENV) IsDevelopment() bool {
	return e.APP_ENV == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// getDecimalEnv rounds to cents since every money column is decimal(10,2).
func getDecimalEnv(key, fallback string) decimal.Decimal {
	v := getEnv(key, fallback)
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		log.Printf("Warning: invalid %s=%q, using %s", key, v, fallback)
		d = decimal.RequireFromString(fallback)
	}
	return d.Round(2)
}
