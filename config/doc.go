// Package config loads command configuration with viper and godotenv.
//
// LoadConfig looks for config.yml under cmd/<name>/, config/ and the working
// directory, then applies a .env file and the process environment on top.
// Environment variables address nested keys with underscores:
//
//	LOGGING_LEVEL=debug        -> logging.level
//	DATASET_PATH=./data.yml    -> dataset.path
//	OUTPUT_PAGE_SIZE=20        -> output.page_size
//
// # Usage
//
//	var cfg Config
//	if err := config.LoadConfig("coursequery", &cfg); err != nil { ... }
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil { ... }
package config
