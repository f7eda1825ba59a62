package config

import (
	"fmt"

	dbm "github.com/cometbft/cometbft-db"
)

// DBContext specifies config information for loading a new DB.
type DBContext struct {
	// DB name
	ID string
	// Configuration
	Config *Config
}

// DBProvider takes a DBContext and returns an instantiated DB.
type DBProvider func(*DBContext) (dbm.DB, error)

// DefaultDBProvider returns a database using the DBBackend and DBDir
// specified in the ctx.Config.
func DefaultDBProvider(ctx *DBContext) (dbm.DB, error) {
	dbType := dbm.BackendType(ctx.Config.DBBackend)
	db, err := dbm.NewDB(ctx.ID, dbType, ctx.Config.DBDir())
	if err != nil {
		return nil, fmt.Errorf("database provider: %w", err)
	}
	return db, nil
}
