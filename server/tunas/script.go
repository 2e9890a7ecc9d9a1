package tunas

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/lunfardo-lang/lunfardo/server/dao"
	"github.com/lunfardo-lang/lunfardo/server/serr"
)

// GetAllScripts returns every script owned by ownerID.
func (svc Service) GetAllScripts(ctx context.Context, ownerID uuid.UUID) ([]dao.Script, error) {
	scripts, err := svc.DB.Scripts().GetAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, serr.WrapDB("", err)
	}
	return scripts, nil
}

// GetScript returns the script with the given ID.
func (svc Service) GetScript(ctx context.Context, id string) (dao.Script, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Script{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	script, err := svc.DB.Scripts().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Script{}, serr.ErrNotFound
		}
		return dao.Script{}, serr.WrapDB("could not get script", err)
	}

	return script, nil
}

// CreateScript stores a new script owned by ownerID.
func (svc Service) CreateScript(ctx context.Context, ownerID uuid.UUID, name, source string) (dao.Script, error) {
	if name == "" {
		return dao.Script{}, serr.New("name cannot be blank", serr.ErrBadArgument)
	}
	if source == "" {
		return dao.Script{}, serr.New("source cannot be blank", serr.ErrBadArgument)
	}

	newScript := dao.Script{
		OwnerID: ownerID,
		Name:    name,
		Source:  source,
	}

	script, err := svc.DB.Scripts().Create(ctx, newScript)
	if err != nil {
		return dao.Script{}, serr.WrapDB("could not create script", err)
	}

	return script, nil
}

// UpdateScript overwrites the name and source of the script with the given
// ID.
func (svc Service) UpdateScript(ctx context.Context, id, name, source string) (dao.Script, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Script{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}
	if name == "" {
		return dao.Script{}, serr.New("name cannot be blank", serr.ErrBadArgument)
	}

	existing, err := svc.DB.Scripts().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Script{}, serr.ErrNotFound
		}
		return dao.Script{}, serr.WrapDB("could not get script", err)
	}

	existing.Name = name
	if source != "" {
		existing.Source = source
	}

	updated, err := svc.DB.Scripts().Update(ctx, uuidID, existing)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Script{}, serr.ErrNotFound
		}
		return dao.Script{}, serr.WrapDB("could not update script", err)
	}

	return updated, nil
}

// DeleteScript deletes the script with the given ID, returning it as it
// existed just before deletion.
func (svc Service) DeleteScript(ctx context.Context, id string) (dao.Script, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Script{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	script, err := svc.DB.Scripts().Delete(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Script{}, serr.ErrNotFound
		}
		return dao.Script{}, serr.WrapDB("could not delete script", err)
	}

	return script, nil
}
