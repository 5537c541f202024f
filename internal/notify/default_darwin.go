//go:build darwin

package notify

func newPlatformNotifier() (Notifier, error) {
	return NewAppleScriptNotifier(), nil
}
