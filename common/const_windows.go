//go:build windows

package common

import (
	"os"
	"strings"
)

// DefaultPipeName is the default name for the Windows named pipe.
const DefaultPipeName = "reminder"

const pipePrefix = `\\.\pipe\`

// DefaultPipePath returns the full default named pipe path.
func DefaultPipePath() string {
	return pipePrefix + DefaultPipeName
}

// PipePath returns the named pipe path, honouring PipeNameEnv. A value that
// already carries the \\.\pipe\ prefix is used as-is.
func PipePath() string {
	if name := os.Getenv(PipeNameEnv); name != "" {
		if strings.HasPrefix(name, pipePrefix) {
			return name
		}
		return pipePrefix + name
	}
	return DefaultPipePath()
}
