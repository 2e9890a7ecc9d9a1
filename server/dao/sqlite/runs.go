package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lunfardo-lang/lunfardo/server/dao"
)

type RunsDB struct {
	db *sql.DB
}

func (repo *RunsDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT NOT NULL PRIMARY KEY,
		script_id TEXT NOT NULL,
		started INTEGER NOT NULL,
		finished INTEGER NOT NULL,
		succeeded INTEGER NOT NULL,
		output BLOB NOT NULL,
		error_text BLOB NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *RunsDB) Create(ctx context.Context, run dao.Run) (dao.Run, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Run{}, fmt.Errorf("could not generate ID: %w", err)
	}

	outBytes, err := encBinary(run.Output)
	if err != nil {
		return dao.Run{}, fmt.Errorf("could not encode output: %w", err)
	}
	errBytes, err := encBinary(run.ErrorText)
	if err != nil {
		return dao.Run{}, fmt.Errorf("could not encode error text: %w", err)
	}

	_, err = repo.db.ExecContext(ctx, `INSERT INTO runs
		(id, script_id, started, finished, succeeded, output, error_text)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		newUUID.String(), run.ScriptID.String(), run.Started.Unix(), run.Finished.Unix(),
		boolToInt(run.Succeeded), outBytes, errBytes,
	)
	if err != nil {
		return dao.Run{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *RunsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Run, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT id, script_id, started, finished, succeeded, output, error_text FROM runs WHERE id = ?;`, id.String())
	return scanRun(row)
}

func (repo *RunsDB) GetAllByScript(ctx context.Context, scriptID uuid.UUID) ([]dao.Run, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, script_id, started, finished, succeeded, output, error_text FROM runs WHERE script_id = ?;`, scriptID.String())
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return all, err
		}
		all = append(all, run)
	}
	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Started.Before(all[j].Started)
	})

	return all, nil
}

func (repo *RunsDB) Close() error {
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func scanRun(row rowScanner) (dao.Run, error) {
	var run dao.Run
	var id, scriptID string
	var started, finished int64
	var succeeded int
	var outBytes, errBytes []byte

	err := row.Scan(&id, &scriptID, &started, &finished, &succeeded, &outBytes, &errBytes)
	if err != nil {
		return dao.Run{}, wrapDBError(err)
	}

	run.ID, err = uuid.Parse(id)
	if err != nil {
		return run, fmt.Errorf("stored UUID %q is invalid", id)
	}
	run.ScriptID, err = uuid.Parse(scriptID)
	if err != nil {
		return run, fmt.Errorf("stored script UUID %q is invalid", scriptID)
	}

	if err := decBinary(outBytes, &run.Output); err != nil {
		return run, fmt.Errorf("%w: output", dao.ErrDecodingFailure)
	}
	if err := decBinary(errBytes, &run.ErrorText); err != nil {
		return run, fmt.Errorf("%w: error_text", dao.ErrDecodingFailure)
	}

	run.Started = time.Unix(started, 0)
	run.Finished = time.Unix(finished, 0)
	run.Succeeded = succeeded != 0

	return run, nil
}
