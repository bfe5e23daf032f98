package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"exam-tutor/internal/config"
	"exam-tutor/internal/repository"
)

func TestBuildStore(t *testing.T) {
	s, closeStore, err := buildStore(&config.Config{StoreBackend: config.BackendMemory}, aws.Config{})
	require.NoError(t, err)
	require.IsType(t, &repository.MemoryStore{}, s)
	closeStore()

	path := filepath.Join(t.TempDir(), "t.db")
	s, closeStore, err = buildStore(&config.Config{StoreBackend: config.BackendSQLite, SQLitePath: path}, aws.Config{})
	require.NoError(t, err)
	require.IsType(t, &repository.SQLiteStore{}, s)
	closeStore()

	s, closeStore, err = buildStore(&config.Config{StoreBackend: config.BackendDynamoDB, TranscriptTable: "t"}, aws.Config{Region: "us-east-1"})
	require.NoError(t, err)
	require.IsType(t, &repository.DynamoStore{}, s)
	closeStore()
}

func TestBuildHandler_StaticKeySkipsAWS(t *testing.T) {
	cfg := &config.Config{
		StoreBackend:    config.BackendMemory,
		OpenAIAPIKey:    "sk-test",
		OpenAIModel:     "gpt-4o",
		ProviderTimeout: time.Second,
		MaxQuestionLen:  2000,
		MaxUploadBytes:  1 << 20,
	}
	require.False(t, cfg.NeedsAWS())

	h, closeStore, err := buildHandler(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, h)
	closeStore()
}

func TestRootCommand_HasServe(t *testing.T) {
	root := newRootCmd()
	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	require.Equal(t, "serve", serve.Name())
	require.NotNil(t, serve.Flags().Lookup("addr"))
}
