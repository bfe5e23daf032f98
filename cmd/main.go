package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"exam-tutor/internal/config"
	"exam-tutor/internal/logging"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "exam-tutor",
		Short: "Study assistant backend for CBSE, JEE and NEET preparation",
		Long: `Runs the exam tutor API. Without a subcommand the binary starts the AWS
Lambda runtime and serves API Gateway proxy events; "serve" runs the same
routes on a local HTTP listener.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLambda(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd())
	return root
}

func runLambda(ctx context.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	h, closeStore, err := buildHandler(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build handler", zap.Error(err))
		return err
	}
	defer closeStore()

	logger.Info("starting lambda runtime", zap.String("store", cfg.StoreBackend))
	lambda.Start(h.Handle)
	return nil
}

// bootstrap loads configuration and the logger, in that order.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
