package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	Path string `yaml:"path" validate:"required"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// LearningConfig is the user-tunable review policy. The caps mirror the
// hard limits the settings UI enforces (200 new / 2000 reviews per day).
type LearningConfig struct {
	NewPerDay           int    `yaml:"newPerDay" validate:"required|int|min:1|max:200"`
	ReviewPerDay        int    `yaml:"reviewPerDay" validate:"required|int|min:1|max:2000"`
	MixMode             string `yaml:"mixMode" validate:"required|in:MIX,REVIEWS_FIRST,NEW_FIRST"`
	BuryImmediateRepeat bool   `yaml:"buryImmediateRepeat"`
}

// GateConfig owns the blocked-app set and the unlock-window policy.
// OverlayInterval = 0 keeps a session open until an explicit re-lock.
type GateConfig struct {
	BlockedApps     []string `yaml:"blockedApps"`
	OverlayInterval int      `yaml:"overlayInterval" validate:"int|min:0|max:2000"`
	OverlayUnit     string   `yaml:"overlayUnit" validate:"required|in:minutes,attempts"`
}

type BackupConfig struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server         `yaml:"webServer"`
	Storage   StorageConfig  `yaml:"storage"`
	Learning  LearningConfig `yaml:"learning"`
	Gate      GateConfig     `yaml:"gate"`
	Backup    BackupConfig   `yaml:"backup"`
	Logger    LoggerConfig   `yaml:"logger"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}
