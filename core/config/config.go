package config

import (
	"reflect"
	"strings"

	"listing-merge/core/database"
	"listing-merge/core/logger"
	"listing-merge/core/merge"
	"listing-merge/core/storage"
	"listing-merge/core/tabular"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the optional database sink.
	Database database.Config `mapstructure:"database"`
	// Merge holds the join and hashing settings.
	Merge merge.Config `mapstructure:"merge"`
	// Input describes the three source files.
	Input InputConfig `mapstructure:"input"`
	// Output describes the merged dataset.
	Output OutputConfig `mapstructure:"output"`
}

// InputConfig describes where the sources live and how each is encoded.
type InputConfig struct {
	// Archive is an optional zip holding the sources, extracted into ExtractDir.
	Archive string `mapstructure:"archive" default:""`
	// ExtractDir is the working directory for extracted and downloaded sources.
	ExtractDir string         `mapstructure:"extract_dir" default:"./datasets"`
	Social     tabular.Config `mapstructure:"social"`
	Search     tabular.Config `mapstructure:"search"`
	Website    tabular.Config `mapstructure:"website"`
}

// OutputConfig describes the merged dataset destination.
type OutputConfig struct {
	// Path is a local path or an s3://bucket/key location.
	Path string `mapstructure:"path" default:"./destination/merged_dataset.csv"`
}

// sourceDefaults are the per-source settings that differ from the tabular defaults.
var sourceDefaults = map[string]any{
	"input.social.path":        "facebook_dataset.csv",
	"input.search.path":        "google_dataset.csv",
	"input.website.path":       "website_dataset.csv",
	"input.website.delimiter":  ";",
	"input.website.multi_line": "true",
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")
	for key, value := range sourceDefaults {
		v.SetDefault(key, value)
	}

	// Map environment variables to nested keys (e.g. INPUT_SOCIAL_PATH -> input.social.path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
