// Package lifecycle holds process-wide start/stop settings.
package lifecycle

import "time"

// DefaultTimeout bounds how long a component may take to drain on shutdown.
const DefaultTimeout = 30 * time.Second
