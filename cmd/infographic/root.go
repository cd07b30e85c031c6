package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"infographic/internal/infra"
	"infographic/internal/layout"
	"infographic/internal/orchestrator"
	"infographic/internal/pipeline"
)

// deps holds what the commands need from the environment so tests can swap
// the backends.
type deps struct {
	newOrchestrator func(selector *layout.Selector) (*orchestrator.Orchestrator, error)
}

func defaultDeps() deps {
	return deps{
		newOrchestrator: func(selector *layout.Selector) (*orchestrator.Orchestrator, error) {
			_ = godotenv.Load()
			cfg, err := infra.LoadConfig()
			if err != nil {
				return nil, err
			}
			logger := infra.NewLoggerWithFile(cfg.AppEnv, cfg.LogFile)
			pipe, err := pipeline.New(cfg, &logger)
			if err != nil {
				return nil, err
			}
			return pipe.NewOrchestrator(selector), nil
		},
	}
}

func newRootCmd(d deps) *cobra.Command {
	root := &cobra.Command{
		Use:          "infographic",
		Short:        "Turn lesson material into a one-page infographic",
		SilenceUsage: true,
	}
	root.AddCommand(newGenerateCmd(d), newRenderCmd(), newIconsCmd())
	return root
}
