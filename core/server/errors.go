package server

import "errors"

// ErrServerAlreadyRunning is returned by Start when the server has
// already been started and not yet stopped.
var ErrServerAlreadyRunning = errors.New("server is already running")
