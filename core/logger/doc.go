// Package logger provides structured logging utilities built on Go's standard slog package.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithProduction("myapp"),
//		logger.WithOutput(os.Stderr),
//	)
//
//	log.Info("request handled",
//		logger.Method(req.Method()),
//		logger.URI(req.FullURI()),
//		logger.ClientIP(req.IP()),
//		logger.StatusCode(200),
//	)
//
// # Configuration
//
// Config carries env tags so it can be loaded with the config package:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.NewFromConfig(cfg)
//
// LOG_LEVEL accepts debug, info, warn and error. LOG_FORMAT accepts json
// (default) and text.
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for zero values (nil errors, empty
// strings), which slog drops from the output:
//
//	log.Error("dispatch failed",
//		logger.Error(err),             // omitted when err is nil
//		logger.Event(evt.Name()),
//		logger.EventID(evt.ID()),
//		logger.Component("event"),
//	)
package logger
