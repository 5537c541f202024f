// Package scheduler implements the reminder triggering engine.
//
// A single goroutine polls the live task list at a fixed cadence. Each task
// remembers when it last fired; a task seen for the first time is recorded
// without firing, and a task fires once whenever the time since its last
// fire reaches its interval. Manual "fire now" requests are queued in an
// inbox that the loop drains every cycle without blocking. Manual fires
// never move the natural schedule.
//
// The live list is swapped wholesale by ReplaceTasks; the last-fired records
// are owned by the loop goroutine and are only read through Status, which
// the loop answers itself. Timing state is not persisted: after a restart
// every task starts over as first observed.
package scheduler
