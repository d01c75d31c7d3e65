package log

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config describes per-logger levels, loaded from an optional yaml file.
//
// loggers:
//   - name: rrm.store
//     level: debug
//   - name: rrm.track
//     level: info
type Config struct {
	DefaultLevel string `yaml:"defaultLevel"`
	Filters      string `yaml:"filters"`
	Loggers      []struct {
		Name  string `yaml:"name"`
		Level string `yaml:"level"`
	} `yaml:"loggers"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse log config: %w", err)
	}
	return &cfg, nil
}

// LoggerManager hands out named child loggers with levels resolved from
// a Config. Unconfigured names inherit the default level.
type LoggerManager struct {
	mu           sync.Mutex
	base         *Logger
	defaultLevel Level
	levels       map[string]Level
	loggers      map[string]*Logger
}

var loggerManager = &LoggerManager{
	base:         std,
	defaultLevel: InfoLevel,
	levels:       map[string]Level{},
	loggers:      map[string]*Logger{},
}

func InitLoggerManager(base *Logger, cfg *Config) *LoggerManager {
	lm := &LoggerManager{
		base:         base,
		defaultLevel: base.Level(),
		levels:       map[string]Level{},
		loggers:      map[string]*Logger{},
	}
	if cfg != nil {
		if cfg.DefaultLevel != "" {
			if l, err := ParseLevel(cfg.DefaultLevel); err == nil {
				lm.defaultLevel = l
			}
		}
		for _, entry := range cfg.Loggers {
			if l, err := ParseLevel(entry.Level); err == nil {
				lm.levels[entry.Name] = l
			}
		}
	}
	loggerManager = lm
	return lm
}

func (lm *LoggerManager) GetLogger(name string) *Logger {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	if l, ok := lm.loggers[name]; ok {
		return l
	}
	l := lm.base.Named(name)
	l.level = lm.resolveLevel(name)
	lm.loggers[name] = l
	return l
}

func (lm *LoggerManager) resolveLevel(name string) Level {
	// longest configured prefix wins (rrm.store before rrm)
	best := ""
	level := lm.defaultLevel
	for cfgName, cfgLevel := range lm.levels {
		if (name == cfgName || strings.HasPrefix(name, cfgName+".")) &&
			len(cfgName) > len(best) {
			best = cfgName
			level = cfgLevel
		}
	}
	return level
}

// GetLogger is a shortcut on the current default manager.
func GetLogger(name string) *Logger {
	return loggerManager.GetLogger(name)
}
