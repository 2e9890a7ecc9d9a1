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

type ScriptsDB struct {
	db *sql.DB
}

func (repo *ScriptsDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS scripts (
		id TEXT NOT NULL PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		source BLOB NOT NULL,
		created INTEGER NOT NULL,
		modified INTEGER NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *ScriptsDB) Create(ctx context.Context, script dao.Script) (dao.Script, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Script{}, fmt.Errorf("could not generate ID: %w", err)
	}

	srcBytes, err := encBinary(script.Source)
	if err != nil {
		return dao.Script{}, fmt.Errorf("could not encode source: %w", err)
	}

	now := time.Now()
	_, err = repo.db.ExecContext(ctx, `INSERT INTO scripts
		(id, owner_id, name, source, created, modified)
		VALUES (?, ?, ?, ?, ?, ?)`,
		newUUID.String(), script.OwnerID.String(), script.Name, srcBytes,
		now.Unix(), now.Unix(),
	)
	if err != nil {
		return dao.Script{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *ScriptsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Script, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT id, owner_id, name, source, created, modified FROM scripts WHERE id = ?;`, id.String())
	return scanScript(row)
}

func (repo *ScriptsDB) GetAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]dao.Script, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, owner_id, name, source, created, modified FROM scripts WHERE owner_id = ?;`, ownerID.String())
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Script
	for rows.Next() {
		script, err := scanScript(rows)
		if err != nil {
			return all, err
		}
		all = append(all, script)
	}
	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Created.Before(all[j].Created)
	})

	return all, nil
}

func (repo *ScriptsDB) Update(ctx context.Context, id uuid.UUID, script dao.Script) (dao.Script, error) {
	srcBytes, err := encBinary(script.Source)
	if err != nil {
		return dao.Script{}, fmt.Errorf("could not encode source: %w", err)
	}

	res, err := repo.db.ExecContext(ctx, `UPDATE scripts SET owner_id=?, name=?, source=?, modified=? WHERE id=?;`,
		script.OwnerID.String(), script.Name, srcBytes, time.Now().Unix(), id.String(),
	)
	if err != nil {
		return dao.Script{}, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return dao.Script{}, wrapDBError(err)
	}
	if rowsAff < 1 {
		return dao.Script{}, dao.ErrNotFound
	}

	return repo.GetByID(ctx, id)
}

func (repo *ScriptsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Script, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM scripts WHERE id = ?`, id.String())
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, dao.ErrNotFound
	}

	return curVal, nil
}

func (repo *ScriptsDB) Close() error {
	return nil
}

func scanScript(row rowScanner) (dao.Script, error) {
	var script dao.Script
	var id, ownerID string
	var srcBytes []byte
	var created, modified int64

	err := row.Scan(&id, &ownerID, &script.Name, &srcBytes, &created, &modified)
	if err != nil {
		return dao.Script{}, wrapDBError(err)
	}

	script.ID, err = uuid.Parse(id)
	if err != nil {
		return script, fmt.Errorf("stored UUID %q is invalid", id)
	}
	script.OwnerID, err = uuid.Parse(ownerID)
	if err != nil {
		return script, fmt.Errorf("stored owner UUID %q is invalid", ownerID)
	}

	if err := decBinary(srcBytes, &script.Source); err != nil {
		return script, fmt.Errorf("%w: source", dao.ErrDecodingFailure)
	}

	script.Created = time.Unix(created, 0)
	script.Modified = time.Unix(modified, 0)

	return script, nil
}
