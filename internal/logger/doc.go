// Package logger wraps Zap with a process-wide logger, runtime level control,
// and context-aware helpers. Login attempts stamp their attempt ID into the
// context so every line emitted during a session carries it automatically.
package logger
