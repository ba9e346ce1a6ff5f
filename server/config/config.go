package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"rangeview/server/table"
)

type Config struct {
	EquityURL     string
	EquityTimeout time.Duration
	Port          string
	DatabaseURL   string
	AutoMigrate   bool
	Color         bool
	Table         Table
}

// Table is the optional YAML preset for the seat layout.
type Table struct {
	table.Footprint `yaml:",inline"`
	Seats           int `yaml:"seats"`
	Button          int `yaml:"button"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{
		EquityURL:     firstNonEmpty(os.Getenv("EQUITY_API_URL"), os.Getenv("NEXT_PUBLIC_API_URL")),
		EquityTimeout: time.Duration(atoiDef(os.Getenv("EQUITY_TIMEOUT_SECONDS"), 0)) * time.Second,
		Port:          strings.TrimSpace(os.Getenv("PORT")),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		AutoMigrate:   asBool(os.Getenv("AUTO_MIGRATE")),
		Color:         os.Getenv("NO_COLOR") == "" && strings.TrimSpace(os.Getenv("USE_COLOR")) != "0",
	}
	if path := strings.TrimSpace(os.Getenv("TABLE_CONFIG")); path != "" {
		t, err := LoadTable(path)
		if err != nil {
			return nil, err
		}
		c.Table = t
	}
	if n := atoiDef(os.Getenv("SEATS"), 0); n > 0 {
		c.Table.Seats = n
	}
	c.applyDefaults()
	return c, nil
}

func LoadTable(path string) (Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Table{}, errors.Wrapf(err, "Error reading table config file [%s]", path)
	}
	var t Table
	if err := yaml.Unmarshal(b, &t); err != nil {
		return Table{}, errors.Wrapf(err, "Error parsing table YAML file [%s]", path)
	}
	return t, nil
}

func (c *Config) applyDefaults() {
	if c.EquityURL == "" {
		c.EquityURL = "http://localhost:8000"
	}
	c.EquityURL = strings.TrimRight(c.EquityURL, "/")
	if c.EquityTimeout <= 0 {
		c.EquityTimeout = 45 * time.Second
	}
	if c.Port == "" {
		c.Port = "8080"
	}

	def := table.DefaultFootprint
	t := &c.Table
	if t.Width <= 0 {
		t.Width = def.Width
	}
	if t.Height <= 0 {
		t.Height = def.Height
	}
	if t.RadiusX <= 0 {
		t.RadiusX = def.RadiusX
	}
	if t.RadiusY <= 0 {
		t.RadiusY = def.RadiusY
	}
	if t.FeltWidth <= 0 {
		t.FeltWidth = def.FeltWidth
	}
	if t.FeltHeight <= 0 {
		t.FeltHeight = def.FeltHeight
	}
	if t.Seats <= 0 {
		t.Seats = 6
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func atoiDef(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func asBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
