package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultBaseURL = "https://bank.paymemobile.fr"

type Config struct {
	TelegramToken  string
	BankBaseURL    string
	TokenFile      string
	QuickPayIban   string
	RequestTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env не обязателен, переменные могут прийти из окружения
		log.Printf("Файл .env не загружен: %v", err)
	}

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		BankBaseURL:    os.Getenv("BANK_BASE_URL"),
		TokenFile:      os.Getenv("TOKEN_FILE"),
		QuickPayIban:   os.Getenv("QUICKPAY_IBAN"),
		RequestTimeout: 15 * time.Second,
	}

	if cfg.BankBaseURL == "" {
		cfg.BankBaseURL = defaultBaseURL
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = "token.dat"
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		sec, err := strconv.Atoi(v)
		if err == nil && sec > 0 {
			cfg.RequestTimeout = time.Duration(sec) * time.Second
		}
	}

	return cfg, nil
}
