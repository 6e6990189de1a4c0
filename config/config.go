package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application configuration, loaded from YAML with environment
// overrides (TIMETABLER_ prefix, dots replaced by underscores).
type Config struct {
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Store     StoreConfig     `mapstructure:"store"`
	Log       LogConfig       `mapstructure:"log"`
}

type SchedulerConfig struct {
	// Solver picks the SAT backend: "gophersat" or "dpll".
	Solver string `mapstructure:"solver"`
	// TimeBudgetSeconds bounds one generation run's search time.
	TimeBudgetSeconds int `mapstructure:"time_budget_seconds"`
	// EnforceSubjectMatch restricts teachers to courses of their department.
	EnforceSubjectMatch bool `mapstructure:"enforce_subject_match"`
	// AcademicYear and Semester are the default term for the CLI.
	AcademicYear string `mapstructure:"academic_year"`
	Semester     int    `mapstructure:"semester"`
}

func (c SchedulerConfig) TimeBudget() time.Duration {
	return time.Duration(c.TimeBudgetSeconds) * time.Second
}

type StoreConfig struct {
	// Driver selects the schedule store: "memory" or "postgres".
	Driver   string         `mapstructure:"driver"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds the PostgreSQL connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// Load reads the configuration file at path. An empty path loads defaults and
// environment overrides only.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("scheduler.solver", "gophersat")
	v.SetDefault("scheduler.time_budget_seconds", 30)
	v.SetDefault("scheduler.enforce_subject_match", false)
	v.SetDefault("scheduler.academic_year", "2025-2026")
	v.SetDefault("scheduler.semester", 1)
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.postgres.host", "localhost")
	v.SetDefault("store.postgres.port", 5432)
	v.SetDefault("store.postgres.sslmode", "disable")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetEnvPrefix("TIMETABLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
