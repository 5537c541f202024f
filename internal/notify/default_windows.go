//go:build windows

package notify

func newPlatformNotifier() (Notifier, error) {
	return NewToastNotifier(), nil
}
