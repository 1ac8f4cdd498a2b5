package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/domain/payroll"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Office   OfficeConfig
	Face     FaceConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port            int
	Env             string
	LogLevel        string
	DefaultTimezone string
}

// OfficeConfig is the geofence reference for attendance capture.
type OfficeConfig struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// FaceConfig points at the external biometric verifier.
type FaceConfig struct {
	BaseURL string
	Timeout time.Duration
}

// PayrollConfig carries the engine tunables. Slab rates are operator
// configuration, not code.
type PayrollConfig struct {
	ExpectedMonthlyHours string
	WorkingHoursPerDay   string
	LateBlockMinutes     int
	ForgivenLateDays     int

	// Slabs is "min-max:leave/unauthorized/late" triples separated by
	// semicolons, e.g. "4500-7500:700/35/25;7501-9500:1400/70/50;9501-:2800/105/75".
	Slabs string
}

func Load() (*Config, error) {
	// A missing .env file is fine in production; variables come from the
	// environment there.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "clinic_hr"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:            appPort,
		Env:             getEnv("APP_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DefaultTimezone: getEnv("DEFAULT_TIMEZONE", "Asia/Kolkata"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	officeLat, err := strconv.ParseFloat(getEnv("OFFICE_LATITUDE", "17.677607"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LATITUDE: %w", err)
	}
	officeLng, err := strconv.ParseFloat(getEnv("OFFICE_LONGITUDE", "83.198662"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LONGITUDE: %w", err)
	}
	officeRadius, err := strconv.ParseFloat(getEnv("OFFICE_RADIUS_METERS", "1000"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_RADIUS_METERS: %w", err)
	}
	config.Office = OfficeConfig{
		Latitude:     officeLat,
		Longitude:    officeLng,
		RadiusMeters: officeRadius,
	}

	faceTimeout, err := time.ParseDuration(getEnv("FACE_VERIFIER_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_VERIFIER_TIMEOUT: %w", err)
	}
	config.Face = FaceConfig{
		BaseURL: getEnv("FACE_VERIFIER_URL", "http://localhost:6000"),
		Timeout: faceTimeout,
	}

	lateBlock, err := strconv.Atoi(getEnv("PAYROLL_LATE_BLOCK_MINUTES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_LATE_BLOCK_MINUTES: %w", err)
	}
	forgiven, err := strconv.Atoi(getEnv("PAYROLL_FORGIVEN_LATE_DAYS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_FORGIVEN_LATE_DAYS: %w", err)
	}
	config.Payroll = PayrollConfig{
		ExpectedMonthlyHours: getEnv("PAYROLL_EXPECTED_MONTHLY_HOURS", "270"),
		WorkingHoursPerDay:   getEnv("PAYROLL_WORKING_HOURS_PER_DAY", "10"),
		LateBlockMinutes:     lateBlock,
		ForgivenLateDays:     forgiven,
		Slabs:                getEnv("PAYROLL_SLABS", ""),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// PayrollRules materializes the engine rule set from configuration, falling
// back to the production defaults for anything unset or unparseable.
func (c *Config) PayrollRules() (payroll.Rules, error) {
	rules := payroll.DefaultRules()

	expected, err := decimal.NewFromString(c.Payroll.ExpectedMonthlyHours)
	if err != nil {
		return payroll.Rules{}, fmt.Errorf("invalid PAYROLL_EXPECTED_MONTHLY_HOURS: %w", err)
	}
	rules.ExpectedMonthlyHours = expected

	perDay, err := decimal.NewFromString(c.Payroll.WorkingHoursPerDay)
	if err != nil {
		return payroll.Rules{}, fmt.Errorf("invalid PAYROLL_WORKING_HOURS_PER_DAY: %w", err)
	}
	rules.WorkingHoursPerDay = perDay

	rules.LateBlockMinutes = c.Payroll.LateBlockMinutes
	rules.ForgivenLateDays = c.Payroll.ForgivenLateDays

	if c.Payroll.Slabs != "" {
		slabs, err := ParseSlabTable(c.Payroll.Slabs)
		if err != nil {
			return payroll.Rules{}, err
		}
		rules.Slabs = slabs
	}

	return rules, nil
}

// ParseSlabTable parses the PAYROLL_SLABS format:
// "min-max:leavePerDay/unauthorizedPerLeave/latePerBlock;..." where an empty
// max means the band is open-ended.
func ParseSlabTable(s string) (payroll.SlabTable, error) {
	var table payroll.SlabTable

	for _, bandStr := range strings.Split(s, ";") {
		bandStr = strings.TrimSpace(bandStr)
		if bandStr == "" {
			continue
		}

		rangeAndRates := strings.SplitN(bandStr, ":", 2)
		if len(rangeAndRates) != 2 {
			return nil, fmt.Errorf("invalid slab band %q: missing ':'", bandStr)
		}

		bounds := strings.SplitN(rangeAndRates[0], "-", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("invalid slab range %q", rangeAndRates[0])
		}

		min, err := decimal.NewFromString(strings.TrimSpace(bounds[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid slab minimum %q: %w", bounds[0], err)
		}

		band := payroll.SlabBand{Min: min}
		if maxStr := strings.TrimSpace(bounds[1]); maxStr != "" {
			max, err := decimal.NewFromString(maxStr)
			if err != nil {
				return nil, fmt.Errorf("invalid slab maximum %q: %w", maxStr, err)
			}
			band.Max = &max
		}

		rates := strings.Split(rangeAndRates[1], "/")
		if len(rates) != 3 {
			return nil, fmt.Errorf("invalid slab rates %q: want leave/unauthorized/late", rangeAndRates[1])
		}
		if band.LeaveDeductionPerDay, err = decimal.NewFromString(strings.TrimSpace(rates[0])); err != nil {
			return nil, fmt.Errorf("invalid leave deduction rate %q: %w", rates[0], err)
		}
		if band.UnauthorizedPerLeave, err = decimal.NewFromString(strings.TrimSpace(rates[1])); err != nil {
			return nil, fmt.Errorf("invalid unauthorized penalty rate %q: %w", rates[1], err)
		}
		if band.LatePenaltyPerBlock, err = decimal.NewFromString(strings.TrimSpace(rates[2])); err != nil {
			return nil, fmt.Errorf("invalid late penalty rate %q: %w", rates[2], err)
		}

		table = append(table, band)
	}

	if len(table) == 0 {
		return nil, fmt.Errorf("slab table %q parsed to no bands", s)
	}
	return table, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
