// Package sqlite provides a dao.Store backed by modernc.org/sqlite, for
// persisting the script execution service's users, scripts, and runs.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"modernc.org/sqlite"

	"github.com/lunfardo-lang/lunfardo/server/dao"
)

type store struct {
	dbFilename string
	db         *sql.DB

	users   *UsersDB
	scripts *ScriptsDB
	runs    *RunsDB
}

func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{dbFilename: "lunfardo.db"}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.users = &UsersDB{db: st.db}
	if err := st.users.init(); err != nil {
		return nil, err
	}

	st.scripts = &ScriptsDB{db: st.db}
	if err := st.scripts.init(); err != nil {
		return nil, err
	}

	st.runs = &RunsDB{db: st.db}
	if err := st.runs.init(); err != nil {
		return nil, err
	}

	return st, nil
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
	return s.db.Close()
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return dao.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}
