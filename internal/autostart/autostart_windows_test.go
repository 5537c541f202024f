//go:build windows

package autostart

import "testing"

func TestRegistryRoundTrip(t *testing.T) {
	valueName = "ReminderManagerTest"
	t.Cleanup(func() {
		disable()
		valueName = EntryName
	})

	if err := enable(`C:\tools\reminder.exe`); err != nil {
		t.Fatalf("enable: %v", err)
	}
	on, err := enabled()
	if err != nil || !on {
		t.Fatalf("enabled() = %v, %v", on, err)
	}
	if err := disable(); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if on, _ := enabled(); on {
		t.Fatal("value still present after disable")
	}
}
