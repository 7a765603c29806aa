// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges an environment-specific overlay and
// environment variables, and decodes everything into a validated Config.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	// Enable ENV override like EXAMSEAT_ALLOCATION_SEATS_PER_ROOM
	v.SetEnvPrefix("EXAMSEAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	env := os.Getenv("EXAMSEAT_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // overlay is optional

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = env
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFile loads .env from the working directory or two levels up, so both
// `go run ./cmd/...` and a repo-root binary find it.
func loadEnvFile() {
	for _, p := range []string{".env", filepath.Join("..", "..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "exam-seating")
	v.SetDefault("input.file", "ApplicantNamelist.xlsx")
	v.SetDefault("input.sheet_name", "Merge")
	v.SetDefault("allocation.seats_per_room", 30)
	v.SetDefault("allocation.sort_key", SortByName)
	v.SetDefault("allocation.sort_locale", "th")
	v.SetDefault("allocation.exam_id_width", 3)
	v.SetDefault("roster.eligible_statuses", []string{"ผ่านคุณสมบัติ", "active", "qualified"})
	v.SetDefault("roster.withdrawn_statuses", []string{"withdrawn", "สละสิทธิ์"})
	v.SetDefault("roster.ineligible_statuses", []string{"rejected", "ไม่ผ่านคุณสมบัติ"})
	v.SetDefault("checkpoint.enabled", false)
	v.SetDefault("checkpoint.path", "exam_seating_checkpoint.db")
	v.SetDefault("output.excel_path", "exam_room_assignments.xlsx")
	v.SetDefault("output.pdf_dir", "pdf")
	v.SetDefault("publish.redis.key_prefix", "examseat")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
