//go:build integration

package sqlstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/syssam/relgen"
	"github.com/syssam/relgen/store/storetest"
)

func TestPostgresContract(t *testing.T) {
	ctx := context.Background()
	container, err := postgres.Run(ctx, "docker.io/library/postgres:16-alpine",
		postgres.WithDatabase("test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	for _, driver := range []string{"pgx", "postgres"} {
		t.Run(driver, func(t *testing.T) {
			table := "rows_" + driver
			storetest.Run(t, func(t *testing.T) relgen.Store {
				s, err := Open(ctx, driver, dsn, WithTable(table))
				require.NoError(t, err)
				t.Cleanup(func() {
					_, _ = s.DB().ExecContext(ctx, "DROP TABLE "+table)
					_ = s.Close()
				})
				return s
			})
		})
	}
}

func TestMySQLContract(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "docker.io/library/mysql:8.0",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "test",
			"MYSQL_DATABASE":      "test",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("port: 3306  MySQL Community Server"),
			wait.ForListeningPort("3306/tcp"),
		).WithDeadline(3 * time.Minute),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "3306")
	require.NoError(t, err)
	dsn := fmt.Sprintf("root:test@tcp(localhost:%d)/test", port.Int())

	storetest.Run(t, func(t *testing.T) relgen.Store {
		s, err := Open(ctx, "mysql", dsn)
		require.NoError(t, err)
		t.Cleanup(func() {
			_, _ = s.DB().ExecContext(ctx, "DROP TABLE "+DefaultTable)
			_ = s.Close()
		})
		return s
	})
}
