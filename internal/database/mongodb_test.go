package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnectMongoWithRetryGivesUp(t *testing.T) {
	ctx := context.Background()
	// nothing listens on port 1; every attempt fails fast
	_, err := ConnectMongoWithRetry(ctx, "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=50", 200*time.Millisecond, 2, time.Millisecond)
	require.Error(t, err)
	require.Contains(t, err.Error(), "after 2 attempts")
}

func TestConnectMongoWithRetryHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ConnectMongoWithRetry(ctx, "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=50", 200*time.Millisecond, 3, time.Second)
	require.Error(t, err)
}

func TestConnectMongo(t *testing.T) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set")
	}
	client, err := ConnectMongo(context.Background(), uri, 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, client.Disconnect(context.Background()))
}
