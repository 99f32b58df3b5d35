// Package logging provides structured logging for the awtrix CLI.
//
// It wraps a global zap logger that stays silent unless a level is set with
// --log-level or the AWTRIX_LOG_LEVEL environment variable, so normal
// command output is never interleaved with diagnostics. When enabled, logs
// go to stderr in zap's console format:
//
//	2026-03-02T10:30:45.123+0100  DEBUG  Device call
//	  transport=http target=192.168.1.50 operation=POST /api/notify elapsed=41ms
//
// # Usage
//
//	if err := logging.Initialize(flagLogLevel); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
//	logging.Debug("Resolved device", zap.String("host", host))
//
// Packages that take a *zap.Logger (the HTTP client, the MQTT publisher)
// receive logging.Named("http") and friends.
package logging
