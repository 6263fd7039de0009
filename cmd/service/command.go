package service

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/store/sqlstore/migration"
	"github.com/postiq-ai/postiq-bot/pkg/telemetry"
)

type Options struct {
	ConfigPath string
}

func (o *Options) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&o.ConfigPath, "config", "c", "", "start with the given config file")
}

func NewCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "service",
		Short: "telegram bot service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func Run(opts *Options) error {
	cfg := core.MustLoadBaseConfig(opts.ConfigPath)

	shutdown, err := telemetry.Setup(context.Background(), cfg.Telemetry, "v1.0.0")
	if err != nil {
		return err
	}
	defer shutdown(context.Background())

	app := core.MustSetupCore(cfg)
	if err := migration.NewRunner(app.Store().GetMaster()).Up(context.Background(), migration.TargetVersion); err != nil {
		return err
	}

	serve(app)
	return nil
}

func NewMigrateCommand() *cobra.Command {
	opts := &Options{}
	var rollback string
	var version string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "apply schema migrations (all, one, or roll one back)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := core.MustSetupCore(core.MustLoadBaseConfig(opts.ConfigPath))
			runner := migration.NewRunner(app.Store().GetMaster())

			ctx := context.Background()
			if rollback != "" {
				return runner.Rollback(ctx, rollback)
			}
			if version != "" {
				return runner.Apply(ctx, version)
			}
			return runner.Up(ctx, migration.TargetVersion)
		},
	}
	opts.AddFlags(cmd.Flags())
	cmd.Flags().StringVar(&rollback, "rollback", "", "roll back one migration by version, e.g. v0_0_19")
	cmd.Flags().StringVar(&version, "version", "", "apply a single migration by version, e.g. v1_0_0")
	return cmd
}
