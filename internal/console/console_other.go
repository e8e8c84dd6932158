//go:build !windows

package console

// IsRunningFromConsole always reports true outside Windows.
func IsRunningFromConsole() bool {
	return true
}

// HandleInterrupt is a no-op outside Windows, where os/signal delivers
// SIGINT regardless of SDL.
func HandleInterrupt(done chan<- struct{}) func() {
	return func() {}
}
