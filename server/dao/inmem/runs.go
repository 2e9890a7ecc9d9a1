package inmem

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/lunfardo-lang/lunfardo/server/dao"
)

func NewRunsRepository() *RunsRepository {
	return &RunsRepository{
		runs: make(map[uuid.UUID]dao.Run),
	}
}

type RunsRepository struct {
	runs map[uuid.UUID]dao.Run
}

func (r *RunsRepository) Close() error {
	return nil
}

func (r *RunsRepository) Create(ctx context.Context, run dao.Run) (dao.Run, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Run{}, fmt.Errorf("could not generate ID: %w", err)
	}
	run.ID = newUUID

	r.runs[run.ID] = run
	return run, nil
}

func (r *RunsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Run, error) {
	run, ok := r.runs[id]
	if !ok {
		return dao.Run{}, dao.ErrNotFound
	}
	return run, nil
}

func (r *RunsRepository) GetAllByScript(ctx context.Context, scriptID uuid.UUID) ([]dao.Run, error) {
	var all []dao.Run
	for _, run := range r.runs {
		if run.ScriptID == scriptID {
			all = append(all, run)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Started.Before(all[j].Started)
	})

	return all, nil
}
