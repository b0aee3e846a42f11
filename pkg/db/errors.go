package db

import "errors"

var (
	ErrInvalidConfig   = errors.New("db: invalid connection settings")
	ErrConnect         = errors.New("db: cannot connect to forum database")
	ErrPing            = errors.New("db: ping failed")
	ErrTx              = errors.New("db: transaction failed")
	ErrDialect         = errors.New("db: unsupported migration dialect")
	ErrMigrate         = errors.New("db: migration failed")
	ErrMigrationStatus = errors.New("db: cannot read schema version")
)
