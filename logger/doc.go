// Package logger is a thin zerolog wrapper: JSON or console output,
// component loggers and the request ID carried on the context.
//
//	log := logger.WithComponent("auth")
//	log.Info("login succeeded", logger.Fields(logger.FieldUserID, 1))
package logger
