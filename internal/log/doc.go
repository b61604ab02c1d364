// Package log provides pokedex's structured logging, built on log/slog.
//
// The SecureHandler masks values that should never reach a log file:
// custom HTTP headers configured for a PokeAPI mirror (Authorization,
// X-Api-Key), proxy credentials, and anything that looks like a bearer
// token or JWT.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("request sent", "url", u, "authorization", token) // token is masked
//
// The interactive browser owns the terminal, so it logs to a file instead:
//
//	logger, closeFn, err := log.NewFileLogger(config.XDGStateDir(), verbose)
package log
