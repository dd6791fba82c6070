package server

import "time"

const (
	readTimeout = 10 * time.Second
	// A cold board build fans out to several upstream calls of up to 10s each.
	writeTimeout = 35 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
