package main

import (
	"context"
	"log"
	"os"

	"github.com/Rakhulsr/go-shop/app/cmd"
	"github.com/Rakhulsr/go-shop/app/configs"
	"go.uber.org/zap"
)

func main() {
	env := configs.LoadEnv()

	logger, err := configs.NewLogger(env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	if err := cmd.RunCli(context.Background(), os.Args, env, logger); err != nil {
		logger.Error("command failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
