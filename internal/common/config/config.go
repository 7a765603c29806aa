// internal/common/config/config.go
package config

import (
	"fmt"
	"strings"

	"exam-seating/internal/common/errors"
)

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Input      InputConfig      `mapstructure:"input"`
	Allocation AllocationConfig `mapstructure:"allocation"`
	Roster     RosterConfig     `mapstructure:"roster"`
	Checkpoint CheckpointConfig `mapstructure:"checkpoint"`
	Output     OutputConfig     `mapstructure:"output"`
	Publish    PublishConfig    `mapstructure:"publish"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type AppConfig struct {
	Name         string `mapstructure:"name"`
	Version      string `mapstructure:"version"`
	Environment  string `mapstructure:"environment"`
	AcademicYear string `mapstructure:"academic_year"`
}

// InputConfig locates the applicant roster workbook.
type InputConfig struct {
	File      string `mapstructure:"file"`
	SheetName string `mapstructure:"sheet_name"`
}

// Sort key identifiers for ordering applicants within a program.
const (
	SortByName = "byName"
	SortByID   = "byId"
)

// AllocationConfig drives the allocation engine.
type AllocationConfig struct {
	SeatsPerRoom int    `mapstructure:"seats_per_room"`
	SortKey      string `mapstructure:"sort_key"`
	// Locale for name collation, BCP 47 (e.g. "th"). Empty means byte order.
	SortLocale string `mapstructure:"sort_locale"`
	// RoomPlanFile optionally names a JSON file with per-program named rooms.
	RoomPlanFile string `mapstructure:"room_plan_file"`
	// ExamIDPrefixes maps programID to the numeric exam-ID prefix. Programs
	// without a prefix are seated but issued no exam ID.
	ExamIDPrefixes map[string]string `mapstructure:"exam_id_prefixes"`
	ExamIDWidth    int               `mapstructure:"exam_id_width"`
	// SortPrograms switches program iteration from first-seen to lexicographic.
	SortPrograms bool `mapstructure:"sort_programs"`
}

// RosterConfig drives normalization.
type RosterConfig struct {
	// EligibleStatuses are the raw status labels mapped to Active,
	// matched case-insensitively.
	EligibleStatuses   []string          `mapstructure:"eligible_statuses"`
	WithdrawnStatuses  []string          `mapstructure:"withdrawn_statuses"`
	IneligibleStatuses []string          `mapstructure:"ineligible_statuses"`
	TitleMapping       map[string]string `mapstructure:"title_mapping"`
	SchoolPrefixes     []string          `mapstructure:"school_prefixes"`
}

type CheckpointConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type OutputConfig struct {
	ExcelPath string `mapstructure:"excel_path"`
	PDFDir    string `mapstructure:"pdf_dir"`
	// FontPath names a UTF-8 TTF embedded into the room lists. Thai text
	// renders as mojibake without one.
	FontPath     string            `mapstructure:"font_path"`
	BoldFontPath string            `mapstructure:"bold_font_path"`
	ExamDates    map[string]string `mapstructure:"exam_dates"` // programID -> printed exam date
}

type PublishConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// KeyPrefix namespaces the published lookup hashes, e.g. "examseat".
	KeyPrefix string `mapstructure:"key_prefix"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Validate rejects configurations the engine would refuse anyway, before any
// work is done.
func (c *Config) Validate() error {
	if c.Allocation.SeatsPerRoom < 1 {
		return errors.NewInvalidCapacityError(c.Allocation.SeatsPerRoom)
	}
	switch c.Allocation.SortKey {
	case SortByName, SortByID:
	default:
		return errors.NewInvalidSortKeyError(c.Allocation.SortKey)
	}
	if c.Allocation.ExamIDWidth < 0 {
		return errors.NewPlanValidationFailedError(
			fmt.Sprintf("exam_id_width must not be negative, got %d", c.Allocation.ExamIDWidth))
	}
	if c.Input.File != "" && !strings.HasSuffix(strings.ToLower(c.Input.File), ".xlsx") {
		return errors.NewInputFileInvalidError(c.Input.File, fmt.Errorf("expected .xlsx input"))
	}
	return nil
}
