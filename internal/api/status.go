package api

import (
	"context"

	"github.com/waw666waw666/reminder/common"
)

// Status reports the scheduler's view of every live task.
func (s *Api) Status(ctx context.Context) (*common.StatusResult, error) {
	if s.sched == nil {
		return nil, ErrNoScheduler
	}
	st, err := s.sched.Status(ctx)
	if err != nil {
		return nil, err
	}
	res := &common.StatusResult{
		PollInterval: s.sched.PollInterval(),
		Items:        make([]common.StatusItem, 0, len(st)),
	}
	for _, row := range st {
		res.Items = append(res.Items, common.StatusItem{
			Task:      row.Task,
			LastFired: row.LastFired,
			NextDue:   row.NextDue(),
			Observed:  row.Observed,
		})
	}
	return res, nil
}
