//go:build integration

package dynamostore

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/syssam/relgen"
	"github.com/syssam/relgen/store/storetest"
)

func TestDynamoDBLocalContract(t *testing.T) {
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "docker.io/amazon/dynamodb-local:latest",
			Cmd:          []string{"-jar", "DynamoDBLocal.jar", "-inMemory"},
			ExposedPorts: []string{"8000/tcp"},
			WaitingFor:   wait.ForListeningPort("8000/tcp"),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "8000")
	require.NoError(t, err)
	endpoint := fmt.Sprintf("http://localhost:%d", port.Int())

	storetest.Run(t, func(t *testing.T) relgen.Store {
		s, err := Connect(ctx, "rows-"+uuid.NewString()[:8], endpoint,
			config.WithRegion("us-east-1"),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")),
		)
		require.NoError(t, err)
		require.NoError(t, s.CreateTable(ctx))
		return s
	})
}
