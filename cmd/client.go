package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/urfave/cli"
	"github.com/waw666waw666/reminder/cmd/common"
	sharedcommon "github.com/waw666waw666/reminder/common"
	"github.com/waw666waw666/reminder/internal/api"
	"github.com/waw666waw666/reminder/internal/store"
	"github.com/waw666waw666/reminder/pkg/logger"
	"github.com/waw666waw666/reminder/pkg/remind"
	"github.com/waw666waw666/reminder/pkg/remindcli"
)

// taskClient is what the task commands need from either the daemon or
// the offline store.
type taskClient interface {
	List(ctx context.Context) ([]remind.Task, error)
	Add(ctx context.Context, p *sharedcommon.TaskParams) (remind.Task, error)
	Edit(ctx context.Context, p *sharedcommon.EditParams) (remind.Task, error)
	Delete(ctx context.Context, id remind.ID) error
	Close() error
}

// newClient is replaced in tests.
var newClient = func() (*remindcli.Client, error) {
	return remindcli.NewClient()
}

// offlineClient edits the store directly while no daemon runs.
type offlineClient struct {
	api *api.Api
}

func (c *offlineClient) List(ctx context.Context) ([]remind.Task, error) {
	return c.api.List(ctx), nil
}

func (c *offlineClient) Add(ctx context.Context, p *sharedcommon.TaskParams) (remind.Task, error) {
	return c.api.Add(ctx, p)
}

func (c *offlineClient) Edit(ctx context.Context, p *sharedcommon.EditParams) (remind.Task, error) {
	return c.api.Edit(ctx, p)
}

func (c *offlineClient) Delete(ctx context.Context, id remind.ID) error {
	return c.api.Delete(ctx, id)
}

func (c *offlineClient) Close() error {
	return c.api.Close()
}

func newOfflineClient(ctx context.Context) (*offlineClient, error) {
	st, err := store.Open(storeKind, afero.NewOsFs(), logger.NewNopLogger())
	if err != nil {
		return nil, err
	}
	a := api.NewApi(nil, st, nil)
	if _, err := a.Load(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return &offlineClient{api: a}, nil
}

// connectTasks returns a daemon client, or an offline one when no daemon
// is reachable. offline reports which one was returned.
func connectTasks(ctx context.Context) (c taskClient, offline bool, err error) {
	client, err := newClient()
	if err == nil {
		return client, false, nil
	}
	if !errors.Is(err, remindcli.ErrUnreachable) {
		return nil, false, err
	}
	oc, err := newOfflineClient(ctx)
	if err != nil {
		return nil, true, err
	}
	return oc, true, nil
}

// connectDaemon returns a daemon client or prints why there is none.
func connectDaemon(ctx *cli.Context, cmd string) *remindcli.Client {
	client, err := newClient()
	if err != nil {
		if errors.Is(err, remindcli.ErrUnreachable) {
			err = fmt.Errorf("the daemon is not running, start it with \"%s daemon\"", ctx.App.HelpName)
		}
		common.PrintRuntimeErr(ctx, cmd, "new_client", err)
		return nil
	}
	return client
}

// errFailed ends a command with exit status 1 after its error has been
// printed.
var errFailed = cli.NewExitError("", 1)

// offlineNotice tells the user a change waits for the next daemon start.
func offlineNotice() {
	fmt.Println("(daemon not running: saved, takes effect when the daemon starts)")
}

// callErr returns the user-facing text of an error from either backend.
func callErr(err error) error {
	if code := remindcli.Code(err); code != 0 {
		return errors.New(remindcli.Message(err))
	}
	return err
}
