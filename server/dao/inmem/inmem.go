// Package inmem provides an in-memory dao.Store, for local development and
// tests that don't need a persisted script execution service.
package inmem

import (
	"fmt"

	"github.com/lunfardo-lang/lunfardo/server/dao"
)

type store struct {
	users   *UsersRepository
	scripts *ScriptsRepository
	runs    *RunsRepository
}

func NewDatastore() dao.Store {
	return &store{
		users:   NewUsersRepository(),
		scripts: NewScriptsRepository(),
		runs:    NewRunsRepository(),
	}
}

func (s *store) Users() dao.UserRepository {
	return s.users
}

func (s *store) Scripts() dao.ScriptRepository {
	return s.scripts
}

func (s *store) Runs() dao.RunRepository {
	return s.runs
}

func (s *store) Close() error {
	var err error

	if closeErr := s.users.Close(); closeErr != nil {
		err = closeErr
	}
	if closeErr := s.scripts.Close(); closeErr != nil {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, %w", err, closeErr)
		} else {
			err = closeErr
		}
	}
	if closeErr := s.runs.Close(); closeErr != nil {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, %w", err, closeErr)
		} else {
			err = closeErr
		}
	}

	return err
}
