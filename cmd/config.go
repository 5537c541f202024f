package cmd

const DESCRIPTION = `
Reminder fires a desktop notification every time one of your
reminders' intervals elapses. Reminders are managed from the
command line while "reminder daemon" runs in the background.
`

const (
	DaemonDescription = `The daemon command runs the scheduler and the local control
socket in the foreground. Only one daemon may run per user.

Example:
        reminder daemon
        reminder --store sqlite daemon --poll-interval 500ms

`
	AddDescription = `The add command creates a reminder that fires every
<interval> minutes. Fractions are allowed.

Example:
        reminder add "Drink water" "Time to drink water!" 30
        reminder add "Stretch" "Stand up for a minute" 0.5

`
	EditDescription = `The edit command changes the title, content or interval of
a reminder. Fields left out keep their value. Editing keeps
the reminder's current schedule.

Example:
        reminder edit --interval 45 1700000000000

`
	DeleteDescription = `The delete command removes a reminder by id.

Example:
        reminder delete 1700000000000

`
	ListDescription = `The list command displays every configured reminder with
its id, which the other commands take as argument.

Example:
        reminder list

`
	TestDescription = `The test command fires a reminder right away without
changing when it fires next. The daemon must be running.

Example:
        reminder test 1700000000000

`
	StatusDescription = `The status command shows how far each reminder is
through its interval and when it fires next. The daemon
must be running.

Example:
        reminder status

`
	StopDescription = `The stop command asks the running daemon to exit.

Example:
        reminder stop

`
	AutostartDescription = `The autostart command registers the daemon to start when
you log in (Windows and Linux desktops).

Example:
        reminder autostart enable

`
)
