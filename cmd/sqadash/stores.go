package main

import (
	"context"
	"fmt"

	"sqa-dashboard/internal/storage"
	"sqa-dashboard/internal/storage/clickhouse"
	"sqa-dashboard/internal/storage/memory"
	"sqa-dashboard/internal/storage/migrations"
	"sqa-dashboard/internal/storage/postgres"
)

// Store kinds accepted by --store and source.kind.
const (
	storePostgres   = "postgres"
	storeClickhouse = "clickhouse"
	storeMemory     = "memory"
)

// openStore connects to the configured project store. When migrate is
// set the embedded migrations are applied first. The returned closer is
// never nil.
func openStore(ctx context.Context, kind string, migrate bool) (storage.ProjectStore, func(), error) {
	switch kind {
	case storePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Source.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if migrate {
			if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		return postgres.NewProjectStore(pool), pool.Close, nil

	case storeClickhouse:
		var (
			conn *clickhouse.Conn
			err  error
		)
		if migrate {
			conn, err = migrations.RunClickhouseMigrations(ctx, cfg.Source.ClickhouseDSN)
		} else {
			conn, err = clickhouse.NewConn(ctx, cfg.Source.ClickhouseDSN)
		}
		if err != nil {
			return nil, nil, err
		}
		return clickhouse.NewProjectStore(conn), func() { _ = conn.Close() }, nil

	case storeMemory:
		return memory.NewProjectStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store %q (want postgres, clickhouse or memory)", kind)
	}
}
