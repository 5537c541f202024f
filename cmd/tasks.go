package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli"
	"github.com/waw666waw666/reminder/cmd/common"
	sharedcommon "github.com/waw666waw666/reminder/common"
	"github.com/waw666waw666/reminder/pkg/remind"
)

const callTimeout = 10 * time.Second

var (
	editTitle    string
	editContent  string
	editInterval string

	editFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "title, t",
			Usage:       "new title",
			Destination: &editTitle,
		},
		cli.StringFlag{
			Name:        "content, c",
			Usage:       "new notification text",
			Destination: &editContent,
		},
		cli.StringFlag{
			Name:        "interval, i",
			Usage:       "new interval in minutes",
			Destination: &editInterval,
		},
	}
)

func add(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	if ctx.NArg() != 3 {
		return common.PrintErrWithCmdHelp(ctx, fmt.Errorf("expected <title> <content> <interval>, got %d argument(s)", ctx.NArg()))
	}
	cctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	client, offline, err := connectTasks(cctx)
	if err != nil {
		common.PrintRuntimeErr(ctx, "add", "new_client", err)
		return errFailed
	}
	defer client.Close()

	t, err := client.Add(cctx, &sharedcommon.TaskParams{
		Title:    ctx.Args().Get(0),
		Content:  ctx.Args().Get(1),
		Interval: ctx.Args().Get(2),
	})
	if err != nil {
		common.PrintRuntimeErr(ctx, "add", "add_task", callErr(err))
		return errFailed
	}
	fmt.Printf("Added reminder %s: %q every %s\n", t.ID, t.Title, formatInterval(t.Interval))
	if offline {
		offlineNotice()
	}
	return nil
}

func edit(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	id := ctx.Args().First()
	if id == "" {
		return common.PrintErrWithCmdHelp(ctx, fmt.Errorf("missing reminder id"))
	}
	if editTitle == "" && editContent == "" && editInterval == "" {
		return common.PrintErrWithCmdHelp(ctx, fmt.Errorf("nothing to change, pass --title, --content or --interval"))
	}
	cctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	client, offline, err := connectTasks(cctx)
	if err != nil {
		common.PrintRuntimeErr(ctx, "edit", "new_client", err)
		return errFailed
	}
	defer client.Close()

	t, err := client.Edit(cctx, &sharedcommon.EditParams{
		ID: remind.ID(id),
		TaskParams: sharedcommon.TaskParams{
			Title:    editTitle,
			Content:  editContent,
			Interval: editInterval,
		},
	})
	if err != nil {
		common.PrintRuntimeErr(ctx, "edit", "edit_task", callErr(err))
		return errFailed
	}
	fmt.Printf("Updated reminder %s: %q every %s\n", t.ID, t.Title, formatInterval(t.Interval))
	if offline {
		offlineNotice()
	}
	return nil
}

func deleteTask(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	id := ctx.Args().First()
	if id == "" {
		return common.PrintErrWithCmdHelp(ctx, fmt.Errorf("missing reminder id"))
	}
	cctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	client, offline, err := connectTasks(cctx)
	if err != nil {
		common.PrintRuntimeErr(ctx, "delete", "new_client", err)
		return errFailed
	}
	defer client.Close()

	if err := client.Delete(cctx, remind.ID(id)); err != nil {
		common.PrintRuntimeErr(ctx, "delete", "delete_task", callErr(err))
		return errFailed
	}
	fmt.Printf("Deleted reminder %s\n", id)
	if offline {
		offlineNotice()
	}
	return nil
}

func list(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	cctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	client, _, err := connectTasks(cctx)
	if err != nil {
		common.PrintRuntimeErr(ctx, "list", "new_client", err)
		return errFailed
	}
	defer client.Close()

	tasks, err := client.List(cctx)
	if err != nil {
		common.PrintRuntimeErr(ctx, "list", "get_list", callErr(err))
		return errFailed
	}
	if len(tasks) == 0 {
		fmt.Printf("%s: no reminders found, add one with \"%s add\"\n", ctx.App.HelpName, ctx.App.HelpName)
		return nil
	}
	fmt.Println(renderTaskList(tasks, time.Now()))
	return nil
}

func testTask(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	id := ctx.Args().First()
	if id == "" {
		return common.PrintErrWithCmdHelp(ctx, fmt.Errorf("missing reminder id"))
	}
	client := connectDaemon(ctx, "test")
	if client == nil {
		return errFailed
	}
	defer client.Close()

	cctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	t, err := client.Trigger(cctx, remind.ID(id))
	if err != nil {
		common.PrintRuntimeErr(ctx, "test", "trigger", callErr(err))
		return errFailed
	}
	fmt.Printf("Sent %q, check your notifications\n", t.Title)
	return nil
}

// renderTaskList formats tasks as the table printed by "list".
func renderTaskList(tasks []remind.Task, now time.Time) string {
	txt := "Here are your reminders:"
	txt += "\n\n-----------------------------------------------------------------------"
	txt += "\n|Num|      Id       |         Title          |   Every   |   Created   |"
	txt += "\n|---|---------------|------------------------|-----------|-------------|"
	for i, t := range tasks {
		txt += fmt.Sprintf("\n|%s|%s|%s|%s|%s|",
			common.Beaut(strconv.Itoa(i+1), 3),
			common.Beaut(string(t.ID), 15),
			common.Beaut(t.Title, 24),
			common.Beaut(formatInterval(t.Interval), 11),
			common.Beaut(created(t.ID, now), 13),
		)
	}
	txt += "\n-----------------------------------------------------------------------"
	return txt
}

// formatInterval renders minutes the way users type them.
func formatInterval(minutes float64) string {
	return strconv.FormatFloat(minutes, 'f', -1, 64) + " min"
}

// created renders the creation time carried by millisecond ids.
func created(id remind.ID, now time.Time) string {
	ms, err := strconv.ParseInt(strings.TrimSpace(string(id)), 10, 64)
	if err != nil || ms <= 0 {
		return "-"
	}
	return humanize.RelTime(time.UnixMilli(ms), now, "ago", "from now")
}
