// Package dao provides data access objects for the Lunfardo script execution
// service: stored scripts, their execution runs, and the users who own them.
package dao

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrConstraintViolation = errors.New("a uniqueness constraint was violated")
	ErrNotFound            = errors.New("the requested resource was not found")
	ErrDecodingFailure     = errors.New("field could not be decoded from DB storage format to model format")
)

// Store holds all the repositories backing the script execution service.
type Store interface {
	Users() UserRepository
	Scripts() ScriptRepository
	Runs() RunRepository
	Close() error
}

type Role int

const (
	Unverified Role = iota
	Normal

	Admin Role = 100
)

func (r Role) String() string {
	switch r {
	case Unverified:
		return "unverified"
	case Normal:
		return "normal"
	case Admin:
		return "admin"
	default:
		return fmt.Sprintf("Role(%d)", r)
	}
}

func ParseRole(s string) (Role, error) {
	switch strings.ToLower(s) {
	case "unverified":
		return Unverified, nil
	case "normal":
		return Normal, nil
	case "admin":
		return Admin, nil
	default:
		return Unverified, fmt.Errorf("must be one of 'unverified', 'normal', or 'admin'")
	}
}

// User is a registered client of the script execution service.
type User struct {
	ID             uuid.UUID // PK, NOT NULL
	Username       string    // UNIQUE, NOT NULL
	Password       string    // bcrypt hash, base64-encoded, NOT NULL
	Email          *mail.Address
	Role           Role // NOT NULL
	Created        time.Time
	Modified       time.Time
	LastLogoutTime time.Time
	LastLoginTime  time.Time
}

type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uuid.UUID, user User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) (User, error)
	Close() error
}

// Script is a saved Lunfardo source file owned by a user.
type Script struct {
	ID       uuid.UUID // PK, NOT NULL
	OwnerID  uuid.UUID // FK (Many-to-One User.ID), NOT NULL
	Name     string    // NOT NULL
	Source   string    // NOT NULL
	Created  time.Time
	Modified time.Time
}

type ScriptRepository interface {
	Create(ctx context.Context, script Script) (Script, error)
	GetByID(ctx context.Context, id uuid.UUID) (Script, error)
	GetAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]Script, error)
	Update(ctx context.Context, id uuid.UUID, script Script) (Script, error)
	Delete(ctx context.Context, id uuid.UUID) (Script, error)
	Close() error
}

// Run records one execution of a Script: the printed result of its last
// top-level expression, or the formatted error if evaluation failed.
type Run struct {
	ID        uuid.UUID // PK, NOT NULL
	ScriptID  uuid.UUID // FK (Many-to-One Script.ID), NOT NULL
	Started   time.Time
	Finished  time.Time
	Succeeded bool
	Output    string // value.String() of the last result, if Succeeded
	ErrorText string // luErr.AsString(), if not Succeeded
}

type RunRepository interface {
	Create(ctx context.Context, run Run) (Run, error)
	GetByID(ctx context.Context, id uuid.UUID) (Run, error)
	GetAllByScript(ctx context.Context, scriptID uuid.UUID) ([]Run, error)
	Close() error
}
