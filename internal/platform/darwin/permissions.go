//go:build darwin

package darwin

import "time"

// Trust checks accessibility permission with AXIsProcessTrustedWithOptions.
type Trust struct{}

// IsTrusted reports whether the process may control the UI. With prompt set
// and permission missing, macOS shows the accessibility dialog; it only does
// so once per launch.
func (Trust) IsTrusted(prompt bool) bool {
	if err := load(); err != nil {
		return false
	}
	if !prompt {
		return fnAXIsProcessTrustedWithOptions(0)
	}
	key, value := kAXTrustedCheckOptionPrompt, kCFBooleanTrue
	opts := fnCFDictionaryCreate(0, &key, &value, 1, kCFTypeDictionaryKeyCallBacks, kCFTypeDictionaryValueCallBacks)
	defer fnCFRelease(opts)
	return fnAXIsProcessTrustedWithOptions(opts)
}

// RunLoop spins the current thread's CFRunLoop in the default mode.
type RunLoop struct{}

// Spin runs the loop for d. A zero duration handles whatever is pending and
// returns.
func (RunLoop) Spin(d time.Duration) {
	if err := load(); err != nil {
		return
	}
	fnCFRunLoopRunInMode(kCFRunLoopDefaultMode, d.Seconds(), false)
}
