package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	seedusecase "shadowdark_backend/internal/feature/seed/usecase"
	"shadowdark_backend/internal/platform/middleware"
)

// deployKeyEnv is read when --deploy-key is not given.
const deployKeyEnv = "DEPLOY_KEY"

var (
	errSeedingDisabled  = errors.New("seeding is disabled: SEED_DEPLOY_KEY is not configured")
	errMissingDeployKey = errors.New("refusing to seed without a deploy key (pass --deploy-key or set " + deployKeyEnv + ")")
	errInvalidDeployKey = errors.New("deploy key does not match SEED_DEPLOY_KEY")
)

// seeder is one table's seed pipeline.
type seeder interface {
	Kind() string
	Seed(ctx context.Context, data []byte) (seedusecase.Result, error)
}

// sourceLoader resolves a seed location into JSON.
type sourceLoader interface {
	Load(ctx context.Context, location string) ([]byte, error)
	Publish(ctx context.Context, file, key string) (string, error)
}

// runtime is what the commands operate on; openRuntime builds the real one.
type runtime struct {
	log          *zap.Logger
	loader       sourceLoader
	deployKey    string // configured
	presented    string
	monstersPath string
	spellsPath   string

	monsters seeder
	spells   seeder
	connect  func() error
	closers  []func()
}

func (rt *runtime) close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
}

// opener builds a runtime from the configuration found in envDir.
type opener func(ctx context.Context, envDir string) (*runtime, error)

func newRootCmd(open opener) *cobra.Command {
	var (
		envDir    string
		deployKey string
		rt        *runtime
	)

	root := &cobra.Command{
		Use:   "seed",
		Short: "Seed the Shadowdark reference tables",
		Long: `Loads monster and spell collections into the database.
A collection is a JSON array (or a YAML list) read from a local path or an
s3://bucket/key location. Records whose slug already exists are skipped.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			rt, err = open(cmd.Context(), envDir)
			if err != nil {
				return err
			}
			rt.presented = deployKey
			if rt.presented == "" {
				rt.presented = os.Getenv(deployKeyEnv)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envDir, "env-dir", ".", "directory holding the .env file")
	root.PersistentFlags().StringVar(&deployKey, "deploy-key", "", "deploy key, must match SEED_DEPLOY_KEY (default $"+deployKeyEnv+")")

	table := func(use, short string, pick func(*runtime) (seeder, string)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " [location]",
			Short: short,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := prepare(rt); err != nil {
					return err
				}
				s, location := pick(rt)
				if len(args) == 1 {
					location = args[0]
				}
				return runSeed(cmd.Context(), cmd.OutOrStdout(), rt.loader, s, location)
			},
		}
	}

	root.AddCommand(
		table("monsters", "Seed the monster table", func(rt *runtime) (seeder, string) {
			return rt.monsters, rt.monstersPath
		}),
		table("spells", "Seed the spell table", func(rt *runtime) (seeder, string) {
			return rt.spells, rt.spellsPath
		}),
		&cobra.Command{
			Use:   "all",
			Short: "Seed monsters, then spells, from the configured locations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := prepare(rt); err != nil {
					return err
				}
				if err := runSeed(cmd.Context(), cmd.OutOrStdout(), rt.loader, rt.monsters, rt.monstersPath); err != nil {
					return err
				}
				return runSeed(cmd.Context(), cmd.OutOrStdout(), rt.loader, rt.spells, rt.spellsPath)
			},
		},
		&cobra.Command{
			Use:   "publish <file> [key]",
			Short: "Upload a local collection to object storage",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := authorize(rt); err != nil {
					return err
				}
				key := ""
				if len(args) == 2 {
					key = args[1]
				}
				location, err := rt.loader.Publish(cmd.Context(), args[0], key)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), location)
				return nil
			},
		},
	)

	for _, sub := range root.Commands() {
		run := sub.RunE
		sub.RunE = func(cmd *cobra.Command, args []string) error {
			defer rt.close()
			return run(cmd, args)
		}
	}
	return root
}

// authorize checks the presented deploy key against the configured one.
func authorize(rt *runtime) error {
	switch {
	case rt.deployKey == "":
		return errSeedingDisabled
	case rt.presented == "":
		return errMissingDeployKey
	case !middleware.MatchDeployKey(rt.deployKey, rt.presented):
		return errInvalidDeployKey
	}
	return nil
}

// prepare checks the deploy key and opens the tables.
func prepare(rt *runtime) error {
	if err := authorize(rt); err != nil {
		return err
	}
	if rt.connect != nil {
		return rt.connect()
	}
	return nil
}

// runSeed loads location and seeds it, printing the summary and every per-record failure.
func runSeed(ctx context.Context, out io.Writer, loader sourceLoader, s seeder, location string) error {
	data, err := loader.Load(ctx, location)
	if err != nil {
		return err
	}
	res, err := s.Seed(ctx, data)
	if err != nil {
		return fmt.Errorf("%s seeding aborted: %w", s.Kind(), err)
	}

	fmt.Fprintf(out, "%ss from %s: %d total, %d inserted, %d skipped, %d errors\n",
		s.Kind(), location, res.Total, res.Inserted, res.Skipped, len(res.Errors))
	for _, e := range res.Errors {
		fmt.Fprintln(out, "  "+e)
	}
	return nil
}
