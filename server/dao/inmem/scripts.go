package inmem

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lunfardo-lang/lunfardo/server/dao"
)

func NewScriptsRepository() *ScriptsRepository {
	return &ScriptsRepository{
		scripts: make(map[uuid.UUID]dao.Script),
	}
}

type ScriptsRepository struct {
	scripts map[uuid.UUID]dao.Script
}

func (r *ScriptsRepository) Close() error {
	return nil
}

func (r *ScriptsRepository) Create(ctx context.Context, script dao.Script) (dao.Script, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Script{}, fmt.Errorf("could not generate ID: %w", err)
	}
	script.ID = newUUID
	script.Created = time.Now()
	script.Modified = script.Created

	r.scripts[script.ID] = script
	return script, nil
}

func (r *ScriptsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Script, error) {
	script, ok := r.scripts[id]
	if !ok {
		return dao.Script{}, dao.ErrNotFound
	}
	return script, nil
}

func (r *ScriptsRepository) GetAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]dao.Script, error) {
	var all []dao.Script
	for _, s := range r.scripts {
		if s.OwnerID == ownerID {
			all = append(all, s)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Created.Before(all[j].Created)
	})

	return all, nil
}

func (r *ScriptsRepository) Update(ctx context.Context, id uuid.UUID, script dao.Script) (dao.Script, error) {
	existing, ok := r.scripts[id]
	if !ok {
		return dao.Script{}, dao.ErrNotFound
	}

	script.ID = id
	script.Created = existing.Created
	script.Modified = time.Now()

	r.scripts[id] = script
	return script, nil
}

func (r *ScriptsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Script, error) {
	script, ok := r.scripts[id]
	if !ok {
		return dao.Script{}, dao.ErrNotFound
	}
	delete(r.scripts, id)
	return script, nil
}
