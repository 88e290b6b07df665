// Package logger builds configured slog.Logger instances.
//
// The factory supports text and JSON handlers, a minimum level, and
// attributes attached to every record:
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatJSON),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithAttr(slog.String("service", "authdemo")),
//	)
//
// ParseLevel and ParseFormat translate configuration strings, falling
// back to info/text for unknown values.
package logger
