package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything the application needs at construction time.
// Domain defaults (wallet seed, address sentinel, payment option) live here
// explicitly instead of being read from the environment at point of use.
type Config struct {
	Addr        string
	DatabaseURL string
	LogLevel    string

	JWTSecret string
	TokenTTL  time.Duration

	// DefaultAddress is the sentinel meaning "user has not set an address".
	// Checkout refuses to settle while a user's address still equals it.
	DefaultAddress string
	// DefaultWalletMoney is the balance granted to newly registered users.
	DefaultWalletMoney int64
	// DefaultPaymentOption is recorded on orders; there is no payment
	// provider integration.
	DefaultPaymentOption string

	// MinAddressLength is the shortest address accepted when a user
	// replaces the sentinel.
	MinAddressLength int
}

func Load() Config {
	return Config{
		Addr:        getEnv("QKART_ADDR", ":8082"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,

		DefaultAddress:       getEnv("DEFAULT_ADDRESS", "ADDRESS_NOT_SET"),
		DefaultWalletMoney:   int64(getEnvInt("DEFAULT_WALLET_MONEY", 500)),
		DefaultPaymentOption: getEnv("DEFAULT_PAYMENT_OPTION", "PAYMENT_OPTION_DEFAULT"),

		MinAddressLength: 20,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
