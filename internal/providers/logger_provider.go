package providers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"wordgate/internal/structures"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeGate
	TypeReview
	TypeStore
	TypeGet
	TypePost
)

func (t TypeEnum) String() string {
	switch t {
	case TypeApp:
		return "app"
	case TypeGate:
		return "gate"
	case TypeReview:
		return "review"
	case TypeStore:
		return "store"
	case TypeGet:
		return "GET"
	case TypePost:
		return "POST"
	}
	return "unknown"
}

func GetLogTypeByRequestType(method string) TypeEnum {
	if method == "POST" {
		return TypePost
	}
	return TypeGet
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

// LogProvider routes application areas to app.log and HTTP access entries to
// access.log, both zerolog JSON streams under the configured directory.
type LogProvider struct {
	app    zerolog.Logger
	access zerolog.Logger
	files  []*os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}

	mode := os.FileMode(conf.Logger.Mode)
	appFile, err := openLogFile(filepath.Join(conf.Logger.Dir, "app.log"), mode)
	if err != nil {
		return nil, err
	}
	accessFile, err := openLogFile(filepath.Join(conf.Logger.Dir, "access.log"), mode)
	if err != nil {
		appFile.Close()
		return nil, err
	}

	appWriter := io.Writer(appFile)
	accessWriter := io.Writer(accessFile)
	if conf.Debug {
		console := zerolog.ConsoleWriter{Out: os.Stderr}
		appWriter = io.MultiWriter(appFile, console)
		accessWriter = io.MultiWriter(accessFile, console)
	}

	return &LogProvider{
		app:    zerolog.New(appWriter).Level(level).With().Timestamp().Logger(),
		access: zerolog.New(accessWriter).Level(level).With().Timestamp().Logger(),
		files:  []*os.File{appFile, accessFile},
	}, nil
}

func openLogFile(path string, mode os.FileMode) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return file, nil
}

func (l *LogProvider) loggerFor(t TypeEnum) *zerolog.Logger {
	if t == TypeGet || t == TypePost {
		return &l.access
	}
	return &l.app
}

func (l *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l.loggerFor(t).Error().Str("area", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l.loggerFor(t).Warn().Str("area", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l.loggerFor(t).Info().Str("area", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l.loggerFor(t).Debug().Str("area", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l.loggerFor(t).Fatal().Str("area", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Close() {
	for _, file := range l.files {
		file.Close()
	}
}
