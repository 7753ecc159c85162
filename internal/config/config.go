package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"storefront/internal/cart"
)

const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
)

var AppEnv Config

type Config struct {
	Port               string
	GinMode            string
	LogLevel           string
	StoreBackend       string
	MongoURI           string
	DBName             string
	CORSAllowedOrigins []string
	RequestTimeout     time.Duration
	Pricing            cart.Pricing
}

// Load reads an optional .env file and fills AppEnv from the environment.
func Load() error {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	cfg, err := FromEnv()
	if err != nil {
		return err
	}
	AppEnv = cfg
	return nil
}

func FromEnv() (Config, error) {
	defaults := cart.DefaultPricing()

	threshold, err := getDecimalEnv("FREE_SHIPPING_THRESHOLD", defaults.FreeShippingThreshold)
	if err != nil {
		return Config{}, err
	}
	fee, err := getDecimalEnv("SHIPPING_FEE", defaults.ShippingFee)
	if err != nil {
		return Config{}, err
	}
	rate, err := getDecimalEnv("TAX_RATE", defaults.TaxRate)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		GinMode:            getEnvOrDefault("GIN_MODE", "release"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		StoreBackend:       getEnvOrDefault("STORE_BACKEND", BackendMemory),
		MongoURI:           getEnvOrDefault("MONGO_URI", ""),
		DBName:             getEnvOrDefault("DB_NAME", "storefront"),
		CORSAllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS"),
		RequestTimeout:     getDurationEnv("REQUEST_TIMEOUT", 5, time.Second),
		Pricing: cart.Pricing{
			FreeShippingThreshold: threshold,
			ShippingFee:           fee,
			TaxRate:               rate,
		},
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required when STORE_BACKEND=mongo")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown GIN_MODE %q", c.GinMode)
	}
	if c.Pricing.TaxRate.IsNegative() || c.Pricing.ShippingFee.IsNegative() {
		return errors.New("pricing values must not be negative")
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}
