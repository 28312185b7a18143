// Package config provides configuration management for listing-merge.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// partial configuration.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Log: Logging level and format
//   - Storage: S3/MinIO credentials for s3:// locations
//   - Database: optional sink connection details
//   - Merge: hash algorithm, join partitions and duplicate policy
//   - Input: archive, working directory and one dialect per source
//   - Output: merged dataset location
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Input.Website.Delimiter)
package config
