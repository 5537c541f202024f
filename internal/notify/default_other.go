//go:build !linux && !windows && !darwin

package notify

func newPlatformNotifier() (Notifier, error) {
	return nil, ErrUnsupported
}
