// Package logger provides structured logging for the flytrap library
// using zerolog.
//
// It supports JSON and console output, log level configuration from the
// environment, and component-scoped child loggers with structured fields.
//
// # Usage
//
//	log := logger.NewFromEnv("flytrap")
//	log.WithComponent("resolver").Info("query completed",
//	    logger.Fields(logger.FieldQuery, "vms.my-app.internal"))
package logger
