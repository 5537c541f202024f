package notify

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Environment variables used to hand text to notification scripts, so
// titles never have to be quoted into script source.
const (
	envTitle  = "REMINDER_NOTIFY_TITLE"
	envBody   = "REMINDER_NOTIFY_BODY"
	envSource = "REMINDER_NOTIFY_SOURCE"
)

// execCommand is swapped in tests.
var execCommand = exec.CommandContext

// ScriptNotifier runs an external program for every notification.
type ScriptNotifier struct {
	name string
	args []string
}

// NewScriptNotifier runs name with args; the text is passed through the
// REMINDER_NOTIFY_* environment variables.
func NewScriptNotifier(name string, args ...string) *ScriptNotifier {
	return &ScriptNotifier{name: name, args: args}
}

// toastScript shows a Windows toast through the WinRT API.
const toastScript = `[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] > $null
$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)
$text = $template.GetElementsByTagName('text')
$text.Item(0).AppendChild($template.CreateTextNode($env:REMINDER_NOTIFY_TITLE)) > $null
$text.Item(1).AppendChild($template.CreateTextNode($env:REMINDER_NOTIFY_BODY)) > $null
$toast = [Windows.UI.Notifications.ToastNotification]::new($template)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier($env:REMINDER_NOTIFY_SOURCE).Show($toast)`

// NewToastNotifier returns a Windows toast sink driven by PowerShell.
func NewToastNotifier() *ScriptNotifier {
	return NewScriptNotifier("powershell.exe", "-NoProfile", "-NonInteractive", "-Command", toastScript)
}

// appleScript shows a macOS notification via osascript.
const appleScript = `display notification (system attribute "REMINDER_NOTIFY_BODY") with title (system attribute "REMINDER_NOTIFY_TITLE") subtitle (system attribute "REMINDER_NOTIFY_SOURCE")`

// NewAppleScriptNotifier returns a macOS sink driven by osascript.
func NewAppleScriptNotifier() *ScriptNotifier {
	return NewScriptNotifier("osascript", "-e", appleScript)
}

func (n *ScriptNotifier) Notify(ctx context.Context, title, body, source string) error {
	cmd := execCommand(ctx, n.name, n.args...)
	cmd.Env = append(cmd.Environ(),
		envTitle+"="+title,
		envBody+"="+body,
		envSource+"="+source,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", n.name, err, msg)
		}
		return fmt.Errorf("%s: %w", n.name, err)
	}
	return nil
}
