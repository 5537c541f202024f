// Package common provides constants and RPC types shared by the daemon and
// the command line client.
package common

// Environment variable names for configuration.
const (
	// SocketPathEnv overrides the Unix control socket path.
	SocketPathEnv = "REMINDER_SOCKET_PATH"

	// PipeNameEnv overrides the Windows named pipe name.
	PipeNameEnv = "REMINDER_PIPE_NAME"

	// StoreEnv selects the task store backend ("json" or "sqlite").
	StoreEnv = "REMINDER_STORE"

	// PollIntervalEnv overrides the scheduler polling cadence (Go duration).
	PollIntervalEnv = "REMINDER_POLL_INTERVAL"

	// DebugEnv enables client debug logging when set to 1.
	DebugEnv = "REMINDER_DEBUG"
)
