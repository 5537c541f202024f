package remindcli

import (
	"context"

	"github.com/waw666waw666/reminder/common"
	"github.com/waw666waw666/reminder/pkg/remind"
)

// Version returns the daemon's version information.
func (c *Client) Version(ctx context.Context) (*common.VersionResult, error) {
	var res common.VersionResult
	return &res, c.call(ctx, common.MethodVersion, nil, &res)
}

// List returns every configured task.
func (c *Client) List(ctx context.Context) ([]remind.Task, error) {
	var res common.ListResult
	if err := c.call(ctx, common.MethodList, nil, &res); err != nil {
		return nil, err
	}
	return res.Tasks, nil
}

// Add creates a task. The interval is validated by the daemon.
func (c *Client) Add(ctx context.Context, p *common.TaskParams) (remind.Task, error) {
	var res common.TaskResult
	err := c.call(ctx, common.MethodAdd, p, &res)
	return res.Task, err
}

// Edit changes the non-empty fields of the task p.ID.
func (c *Client) Edit(ctx context.Context, p *common.EditParams) (remind.Task, error) {
	var res common.TaskResult
	err := c.call(ctx, common.MethodEdit, p, &res)
	return res.Task, err
}

// Delete removes a task.
func (c *Client) Delete(ctx context.Context, id remind.ID) error {
	var ok bool
	return c.call(ctx, common.MethodDelete, &common.IDParams{ID: id}, &ok)
}

// Trigger asks the scheduler to fire a task on its next cycle.
func (c *Client) Trigger(ctx context.Context, id remind.ID) (remind.Task, error) {
	var res common.TaskResult
	err := c.call(ctx, common.MethodTrigger, &common.IDParams{ID: id}, &res)
	return res.Task, err
}

// Status returns the scheduler's view of every task.
func (c *Client) Status(ctx context.Context) (*common.StatusResult, error) {
	var res common.StatusResult
	if err := c.call(ctx, common.MethodStatus, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// StopDaemon asks the daemon to shut down. A connection dropped by the
// exiting daemon counts as success.
func (c *Client) StopDaemon(ctx context.Context) error {
	var ok bool
	err := c.call(ctx, common.MethodShutdown, nil, &ok)
	if err != nil && isDisconnect(err) {
		return nil
	}
	return err
}
