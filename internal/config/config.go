package config

import (
	"log"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Invoice   InvoiceConfig
	Email     EmailConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

// InvoiceConfig carries business defaults stamped onto new invoices.
type InvoiceConfig struct {
	// TaxRate is the VAT fraction applied to the discounted subtotal,
	// e.g. 0.20 for 20% KDV.
	TaxRate        decimal.Decimal
	DeliveryPerson string
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyTaxInfo string
}

type EmailConfig struct {
	SMTPHost    string
	SMTPPort    string
	SMTPUser    string
	SMTPPass    string
	FromAddress string
	FromName    string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "partsdesk-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "partsdesk")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Europe/Istanbul")
	viper.SetDefault("INVOICE_TAX_RATE", "0.20")
	viper.SetDefault("INVOICE_DELIVERY_PERSON", "")
	viper.SetDefault("COMPANY_NAME", "Aydın Lift Forklift Yedek Parça")
	viper.SetDefault("COMPANY_ADDRESS", "")
	viper.SetDefault("COMPANY_PHONE", "")
	viper.SetDefault("COMPANY_TAX_INFO", "")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", "587")
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASS", "")
	viper.SetDefault("EMAIL_FROM_ADDRESS", "")
	viper.SetDefault("EMAIL_FROM_NAME", "PartsDesk")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	taxRate, err := decimal.NewFromString(viper.GetString("INVOICE_TAX_RATE"))
	if err != nil {
		log.Printf("Warning: invalid INVOICE_TAX_RATE, falling back to 0.20: %v", err)
		taxRate = decimal.NewFromFloat(0.20)
	}

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Invoice: InvoiceConfig{
			TaxRate:        taxRate,
			DeliveryPerson: viper.GetString("INVOICE_DELIVERY_PERSON"),
			CompanyName:    viper.GetString("COMPANY_NAME"),
			CompanyAddress: viper.GetString("COMPANY_ADDRESS"),
			CompanyPhone:   viper.GetString("COMPANY_PHONE"),
			CompanyTaxInfo: viper.GetString("COMPANY_TAX_INFO"),
		},
		Email: EmailConfig{
			SMTPHost:    viper.GetString("SMTP_HOST"),
			SMTPPort:    viper.GetString("SMTP_PORT"),
			SMTPUser:    viper.GetString("SMTP_USER"),
			SMTPPass:    viper.GetString("SMTP_PASS"),
			FromAddress: viper.GetString("EMAIL_FROM_ADDRESS"),
			FromName:    viper.GetString("EMAIL_FROM_NAME"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
