// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/H0llyW00dzZ/spawn-sync/src/config"
	"github.com/H0llyW00dzZ/spawn-sync/src/internal/helper/posix"
	"github.com/spf13/cobra"
)

// NewCommand builds the root command of the MCP server binary.
//
// Without flags the command serves MCP over stdio until SIGINT or SIGTERM.
// --instructions prints the instructions sent to clients and exits, similar
// to [gopls]. --config overrides the SPAWNSYNC_CONFIG_FILE environment
// variable.
//
// [gopls]: https://tip.golang.org/gopls/features/mcp#instructions-to-the-model
func NewCommand(version string) *cobra.Command {
	exeName := posix.ExecutableName()

	var (
		configFile       string
		showInstructions bool
	)

	rootCmd := &cobra.Command{
		Use:   exeName,
		Short: "MCP server that runs allowed programs and returns their output",
		Long: `Serve the Model Context Protocol over standard input and output.

Clients can run programs to completion with the spawn_sync tool and receive
their standard output, standard error and exit code. Only programs listed in
server.allowedPrograms of the configuration file may be started.`,
		Example: fmt.Sprintf(`  %[1]s --config spawnsync.yaml
  SPAWNSYNC_CONFIG_FILE=spawnsync.json %[1]s
  %[1]s --instructions`, exeName),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected arguments: %s for %q", strings.Join(args, " "), exeName)
			}

			if showInstructions {
				tools, toolsWithConfig := createTools()
				instructions, err := loadInstructions(tools, toolsWithConfig)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), instructions)
				return err
			}

			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log := newLogger(cfg, cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Printf("%s %s started", ServerName, version)
			err = serveStdio(ctx, cfg, version, log)
			log.Printf("%s stopped", ServerName)
			return err
		},
	}

	rootCmd.Flags().BoolVar(&showInstructions, "instructions", false, "print the instructions sent to MCP clients and exit")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to configuration file (default: $"+config.EnvConfigFile+")")

	return rootCmd
}
