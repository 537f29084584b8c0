// Package logger provides structured logging for coursequery using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers. Loggers enriched with WithContext carry the
// active trace and span IDs plus the query run ID stored by ContextWithRunID.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("catalog")
//	log.Info("dataset loaded", logger.Fields(logger.FieldCount, 4))
package logger
