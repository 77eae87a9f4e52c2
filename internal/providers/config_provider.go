package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"wordgate/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// viper is process-global; reset so repeated loads never see stale
	// search paths.
	viper.Reset()

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("learning.newPerDay", 15)
	viper.SetDefault("learning.reviewPerDay", 99)
	viper.SetDefault("learning.mixMode", "MIX")
	viper.SetDefault("learning.buryImmediateRepeat", true)
	viper.SetDefault("gate.overlayInterval", 0)
	viper.SetDefault("gate.overlayUnit", "minutes")

	viper.BindEnv("logger.level", "WORDGATE_LOG_LEVEL")
	viper.BindEnv("storage.path", "WORDGATE_DB_PATH")
	viper.BindEnv("backup.saveInterval", "WORDGATE_BACKUP_INTERVAL")
	viper.BindEnv("learning.newPerDay", "WORDGATE_NEW_PER_DAY")
	viper.BindEnv("learning.reviewPerDay", "WORDGATE_REVIEW_PER_DAY")
	viper.BindEnv("cache.enabled", "WORDGATE_CACHE_ENABLED")
	viper.BindEnv("cache.size", "WORDGATE_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "WordGate"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
