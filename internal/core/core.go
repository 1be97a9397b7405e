package core

import (
	"database/sql"
	"log/slog"

	"github.com/conduitapp/conduit/internal/database"
	"github.com/mdobak/go-xerrors"
)

var (
	ErrNotFound           = xerrors.Message("No record found")
	ErrDuplicateEmail     = xerrors.Message("Duplicate email")
	ErrDuplicateUsername  = xerrors.Message("Duplicate username")
	ErrDuplicatedSlug     = xerrors.Message("Duplicate slug")
	ErrInvalidCredentials = xerrors.Message("Invalid username or password")
)

type Core struct {
	log         *slog.Logger
	db          *sql.DB
	sqlTemplate *database.SQLTemplate
	session     database.Session
}

func NewCore(dbConn *sql.DB, log *slog.Logger, sqlTemplate *database.SQLTemplate) *Core {
	return &Core{
		log:         log,
		db:          dbConn,
		sqlTemplate: sqlTemplate,
		session:     database.NewSession(dbConn, log),
	}
}
