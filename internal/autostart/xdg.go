package autostart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const desktopFileName = "reminder.desktop"

// XDG manages a freedesktop autostart entry in Dir.
type XDG struct {
	Fs  afero.Fs
	Dir string
}

// DefaultXDG returns the entry manager for $XDG_CONFIG_HOME/autostart.
func DefaultXDG() (*XDG, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &XDG{Fs: afero.NewOsFs(), Dir: filepath.Join(dir, "autostart")}, nil
}

// Path returns the desktop entry location.
func (x *XDG) Path() string {
	return filepath.Join(x.Dir, desktopFileName)
}

func (x *XDG) Enable(exe string) error {
	if err := x.Fs.MkdirAll(x.Dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", x.Dir, err)
	}
	entry := fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Comment=Personal reminder scheduler
Exec=%s
Terminal=false
X-GNOME-Autostart-enabled=true
`, EntryName, Command(exe))
	return afero.WriteFile(x.Fs, x.Path(), []byte(entry), 0o644)
}

func (x *XDG) Disable() error {
	err := x.Fs.Remove(x.Path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (x *XDG) Enabled() (bool, error) {
	return afero.Exists(x.Fs, x.Path())
}
