package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.uber.org/zap"

	"exam-tutor/handler"
	"exam-tutor/internal/config"
	"exam-tutor/internal/integrations/openai"
	"exam-tutor/internal/integrations/paramstore"
	"exam-tutor/internal/repository"
	"exam-tutor/internal/usecase"
)

// buildHandler wires clients, store and service. The returned func releases
// the store.
func buildHandler(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*handler.Handler, func(), error) {
	var awsCfg aws.Config
	if cfg.NeedsAWS() {
		var err error
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("load AWS config: %w", err)
		}
	}

	store, closeStore, err := buildStore(cfg, awsCfg)
	if err != nil {
		return nil, nil, err
	}

	llm, err := buildLLMClient(cfg, awsCfg)
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	invoker, err := usecase.NewInvoker(llm, cfg.OpenAIModel, cfg.ProviderTimeout, logger.Named("invoker"))
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	tutor, err := usecase.NewTutorService(invoker, store, cfg.MaxQuestionLen, logger.Named("tutor"))
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	h, err := handler.NewHandler(tutor,
		handler.WithLogger(logger.Named("handler")),
		handler.WithMaxUploadBytes(cfg.MaxUploadBytes),
	)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return h, closeStore, nil
}

func buildStore(cfg *config.Config, awsCfg aws.Config) (usecase.TranscriptStore, func(), error) {
	noop := func() {}
	switch cfg.StoreBackend {
	case config.BackendDynamoDB:
		s, err := repository.NewDynamoStore(awsdynamodb.NewFromConfig(awsCfg), cfg.TranscriptTable)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	case config.BackendSQLite:
		s, err := repository.OpenSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return repository.NewMemoryStore(), noop, nil
	}
}

func buildLLMClient(cfg *config.Config, awsCfg aws.Config) (*openai.Client, error) {
	opts := []openai.Option{openai.WithBaseURL(cfg.OpenAIBaseURL)}
	if cfg.OpenAIAPIKey != "" {
		opts = append(opts, openai.WithAPIKey(cfg.OpenAIAPIKey))
	} else {
		ssmClient, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
		if err != nil {
			return nil, err
		}
		cached, err := paramstore.NewCachedGetter(ssmClient, cfg.ParamCacheTTL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, openai.WithParamStore(cached, cfg.ParamPrefix))
	}
	return openai.NewClient(opts...)
}
