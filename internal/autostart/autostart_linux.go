//go:build linux

package autostart

func enable(exe string) error {
	x, err := DefaultXDG()
	if err != nil {
		return err
	}
	return x.Enable(exe)
}

func disable() error {
	x, err := DefaultXDG()
	if err != nil {
		return err
	}
	return x.Disable()
}

func enabled() (bool, error) {
	x, err := DefaultXDG()
	if err != nil {
		return false, err
	}
	return x.Enabled()
}
