package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v8"
	"github.com/waw666waw666/reminder/cmd/common"
	sharedcommon "github.com/waw666waw666/reminder/common"
)

var (
	statusPlain bool

	statusFlags = []cli.Flag{
		cli.BoolFlag{
			Name:        "plain, p",
			Usage:       "print a table instead of progress bars",
			Destination: &statusPlain,
		},
	}
)

// isTerminal is replaced in tests.
var isTerminal = func(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func status(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client := connectDaemon(ctx, "status")
	if client == nil {
		return errFailed
	}
	defer client.Close()

	cctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	res, err := client.Status(cctx)
	if err != nil {
		common.PrintRuntimeErr(ctx, "status", "get_status", callErr(err))
		return errFailed
	}
	if len(res.Items) == 0 {
		fmt.Println("No reminders are scheduled")
		return nil
	}
	now := time.Now()
	if statusPlain || !isTerminal(os.Stdout) {
		fmt.Println(renderStatusTable(res.Items, now))
		return nil
	}
	renderStatusBars(os.Stdout, res.Items, now)
	return nil
}

// dueText describes when an item fires next.
func dueText(it sharedcommon.StatusItem, now time.Time) string {
	if !it.Observed {
		return "waiting for first check"
	}
	if !it.NextDue.After(now) {
		return "due now"
	}
	return "due " + humanize.RelTime(it.NextDue, now, "ago", "from now")
}

// renderStatusTable formats items for non-terminal output.
func renderStatusTable(items []sharedcommon.StatusItem, now time.Time) string {
	txt := "-------------------------------------------------------------------------"
	txt += "\n|Num|         Title          |   Every   |          Next due           |"
	txt += "\n|---|------------------------|-----------|-----------------------------|"
	for i, it := range items {
		txt += fmt.Sprintf("\n|%s|%s|%s|%s|",
			common.Beaut(strconv.Itoa(i+1), 3),
			common.Beaut(it.Task.Title, 24),
			common.Beaut(formatInterval(it.Task.Interval), 11),
			common.Beaut(dueText(it, now), 29),
		)
	}
	txt += "\n-------------------------------------------------------------------------"
	return txt
}

// renderStatusBars draws one bar per item showing how much of its
// interval has elapsed. The bars are static and rendered once.
func renderStatusBars(w io.Writer, items []sharedcommon.StatusItem, now time.Time) {
	p := mpb.New(mpb.WithOutput(w), mpb.WithWidth(40))
	bars := make([]*mpb.Bar, 0, len(items))
	for _, it := range items {
		total := it.Task.Period().Milliseconds()
		if total <= 0 {
			total = 1
		}
		var current int64
		if it.Observed {
			current = now.Sub(it.LastFired).Milliseconds()
			if current < 0 {
				current = 0
			}
		}
		bars = append(bars, common.NewCountdownBar(p, runewidth.Truncate(it.Task.Title, 24, "..."), total, current, dueText(it, now)))
	}
	for _, b := range bars {
		b.Abort(false)
	}
	p.Wait()
}
