package server

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/waw666waw666/reminder/common"
	"github.com/waw666waw666/reminder/internal/api"
	"github.com/waw666waw666/reminder/pkg/remind"
)

// Custom JSON-RPC error codes for task operations.
const (
	codeTaskNotFound  = jrpc2.Code(-32001)
	codeNoScheduler   = jrpc2.Code(-32002)
	codeInvalidParams = jrpc2.Code(-32602)
)

func (s *Server) registerMethods() handler.Map {
	return handler.Map{
		common.MethodVersion:  handler.New(s.systemGetVersion),
		common.MethodList:     handler.New(s.taskList),
		common.MethodAdd:      handler.New(s.taskAdd),
		common.MethodEdit:     handler.New(s.taskEdit),
		common.MethodDelete:   handler.New(s.taskDelete),
		common.MethodTrigger:  handler.New(s.taskTrigger),
		common.MethodStatus:   handler.New(s.schedulerStatus),
		common.MethodShutdown: handler.New(s.daemonStop),
	}
}

func (s *Server) systemGetVersion(_ context.Context) (*common.VersionResult, error) {
	return &common.VersionResult{
		Version:   s.cfg.Version,
		Commit:    s.cfg.Commit,
		BuildType: s.cfg.BuildType,
	}, nil
}

func (s *Server) taskList(ctx context.Context) (*common.ListResult, error) {
	return &common.ListResult{Tasks: s.api.List(ctx)}, nil
}

func (s *Server) taskAdd(ctx context.Context, p *common.TaskParams) (*common.TaskResult, error) {
	t, err := s.api.Add(ctx, p)
	if err != nil {
		return nil, rpcError(err)
	}
	return &common.TaskResult{Task: t}, nil
}

func (s *Server) taskEdit(ctx context.Context, p *common.EditParams) (*common.TaskResult, error) {
	if p.ID == "" {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: id"}
	}
	t, err := s.api.Edit(ctx, p)
	if err != nil {
		return nil, rpcError(err)
	}
	return &common.TaskResult{Task: t}, nil
}

func (s *Server) taskDelete(ctx context.Context, p *common.IDParams) (bool, error) {
	if p.ID == "" {
		return false, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: id"}
	}
	if err := s.api.Delete(ctx, p.ID); err != nil {
		return false, rpcError(err)
	}
	return true, nil
}

func (s *Server) taskTrigger(ctx context.Context, p *common.IDParams) (*common.TaskResult, error) {
	if p.ID == "" {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: id"}
	}
	t, err := s.api.Trigger(ctx, p.ID)
	if err != nil {
		return nil, rpcError(err)
	}
	return &common.TaskResult{Task: t}, nil
}

func (s *Server) schedulerStatus(ctx context.Context) (*common.StatusResult, error) {
	res, err := s.api.Status(ctx)
	if err != nil {
		return nil, rpcError(err)
	}
	return res, nil
}

// daemonStop acknowledges the request before shutting down so the reply
// reaches the client.
func (s *Server) daemonStop(_ context.Context) (bool, error) {
	if s.shutdown == nil {
		return false, &jrpc2.Error{Code: codeNoScheduler, Message: "daemon cannot be stopped remotely"}
	}
	s.log.Info("stop requested over control socket")
	go s.shutdown()
	return true, nil
}

// rpcError maps api errors to JSON-RPC errors with stable codes.
func rpcError(err error) error {
	var verr *remind.ValidationError
	switch {
	case errors.Is(err, remind.ErrNotFound):
		return &jrpc2.Error{Code: codeTaskNotFound, Message: "task not found"}
	case errors.As(err, &verr):
		return &jrpc2.Error{Code: codeInvalidParams, Message: verr.Error()}
	case errors.Is(err, api.ErrNoScheduler):
		return &jrpc2.Error{Code: codeNoScheduler, Message: err.Error()}
	}
	return err
}

func isDisconnect(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		strings.Contains(err.Error(), "use of closed network connection")
}
