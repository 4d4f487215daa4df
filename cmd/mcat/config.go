package main

import (
	"fmt"
	"strings"

	"github.com/franz/music-catalog/internal/importer"
	"github.com/franz/music-catalog/internal/util"
	"github.com/spf13/viper"
)

// GetConfigString retrieves a string config value with proper precedence:
// 1. Command-line flag (if set)
// 2. Environment variable (MCAT_*)
// 3. Config file
// 4. Default value
func GetConfigString(key string, defaultValue string) string {
	val := viper.GetString(key)
	if val == "" {
		return defaultValue
	}
	return val
}

// GetConfigInt retrieves an int config value with proper precedence
func GetConfigInt(key string, defaultValue int) int {
	val := viper.GetInt(key)
	if val == 0 {
		return defaultValue
	}
	return val
}

// GetConfigBool retrieves a bool config value
func GetConfigBool(key string) bool {
	return viper.GetBool(key)
}

// GetConfigStringSlice retrieves a string slice config value
func GetConfigStringSlice(key string) []string {
	return viper.GetStringSlice(key)
}

// importSettings are the import options after flags, env and file are merged
type importSettings struct {
	Concurrency int
	Venue       string
	AssignedBy  string
	Extensions  []string
}

func loadImportSettings() (*importSettings, error) {
	s := &importSettings{
		Concurrency: GetConfigInt("concurrency", 4),
		Venue:       GetConfigString("venue", importer.DefaultVenue),
		AssignedBy:  GetConfigString("assigned_by", importer.DefaultAssignedBy),
		Extensions:  GetConfigStringSlice("extensions"),
	}

	if s.Concurrency < 0 {
		return nil, fmt.Errorf("concurrency must be positive, got %d: %w", s.Concurrency, util.ErrInvalidConfig)
	}
	for _, ext := range s.Extensions {
		if ext == "" || strings.ContainsAny(ext, `/\ `) {
			return nil, fmt.Errorf("invalid extension %q: %w", ext, util.ErrInvalidConfig)
		}
	}

	return s, nil
}
