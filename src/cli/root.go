// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/H0llyW00dzZ/spawn-sync/src/config"
	"github.com/H0llyW00dzZ/spawn-sync/src/internal/report"
	"github.com/H0llyW00dzZ/spawn-sync/src/logger"
	"github.com/H0llyW00dzZ/spawn-sync/src/spawn"
	"github.com/spf13/cobra"
)

// ExitNotStarted is the exit code used when the program could not be run,
// following the shell's "command not found" convention.
const ExitNotStarted = 127

// ErrProgramRequired is returned when no program is given.
var ErrProgramRequired = errors.New("a program to run is required")

// ExitError carries the exit code spawnsync should terminate with.
type ExitError struct {
	Code int
	// Err is the spawn failure, if any. Nil when the program simply exited
	// with a non-zero code.
	Err error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("exit %d: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("exit %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

type flags struct {
	dir             string
	backend         string
	concurrentDrain bool
	noStdout        bool
	noStderr        bool
	json            bool
	table           bool
	encoding        string
	configFile      string
	logJSON         bool
}

// Execute runs the root command with os.Args.
//
// A program that runs and exits non-zero, or that cannot be started, yields
// an [*ExitError] with the code to exit with.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return NewCommand(version, log).ExecuteContext(ctx)
}

// NewCommand builds the root command. Output goes to the command's out and
// err writers; diagnostics go to log unless the configuration selects JSON
// logging or silence.
func NewCommand(version string, log logger.Logger) *cobra.Command {
	if log == nil {
		log = logger.Discard
	}
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:   "spawnsync [flags] [--] PROGRAM [ARGS...]",
		Short: "Run a program and collect its output and exit code",
		Long: `spawnsync runs PROGRAM with ARGS, waits for it to exit and then prints
everything it wrote to standard output and standard error.

spawnsync exits with the program's exit code, or 127 if it could not be started.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return ErrProgramRequired
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, log, args)
		},
	}

	// Everything after PROGRAM belongs to PROGRAM.
	rootCmd.Flags().SetInterspersed(false)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&f.configFile, "config", "c", "", "configuration file (.json, .yaml, .yml); default $"+config.EnvConfigFile)
	pf.StringVar(&f.backend, "backend", "", "spawn backend: native or exec (default from config, else native)")
	pf.BoolVarP(&f.json, "json", "j", false, "print a JSON document instead of raw output")
	pf.BoolVar(&f.logJSON, "log-json", false, "write diagnostics as JSON lines")

	fl := rootCmd.Flags()
	fl.StringVarP(&f.dir, "dir", "C", "", "working directory for PROGRAM")
	fl.BoolVar(&f.concurrentDrain, "concurrent-drain", false, "read stdout and stderr in parallel")
	fl.BoolVar(&f.noStdout, "no-stdout", false, "do not capture standard output")
	fl.BoolVar(&f.noStderr, "no-stderr", false, "do not capture standard error")
	fl.BoolVar(&f.table, "table", false, "print a markdown summary table")
	fl.StringVarP(&f.encoding, "encoding", "e", "", "character set PROGRAM writes, converted to UTF-8 (e.g. windows-1252)")

	rootCmd.MarkFlagsMutuallyExclusive("json", "table")
	rootCmd.AddCommand(newQuoteCommand(f))

	return rootCmd
}

// settings merges the config file with the flags that were set explicitly.
func settings(cmd *cobra.Command, f *flags, log logger.Logger) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, nil, err
	}

	if cmd.Flags().Changed("backend") {
		cfg.Backend = f.backend
	}
	if cmd.Flags().Changed("concurrent-drain") {
		cfg.DrainConcurrently = f.concurrentDrain
	}
	if cmd.Flags().Changed("encoding") {
		cfg.Output.Encoding = f.encoding
	}
	if f.logJSON {
		cfg.Log.Format = config.LogFormatJSON
	}

	switch {
	case cfg.Log.Silent:
		log = logger.Discard
	case cfg.Log.Format == config.LogFormatJSON:
		log = logger.NewJSONLogger(cmd.ErrOrStderr(), false)
	}
	return cfg, log, nil
}

func run(cmd *cobra.Command, f *flags, log logger.Logger, args []string) error {
	cfg, log, err := settings(cmd, f, log)
	if err != nil {
		return err
	}
	backend, err := cfg.SpawnBackend()
	if err != nil {
		return err
	}
	dec, err := report.NewDecoder(cfg.Output.Encoding)
	if err != nil {
		return err
	}
	if err := cmd.Context().Err(); err != nil {
		return err
	}

	req := spawn.Request{
		Dir:               f.dir,
		Argv:              args,
		CaptureStdout:     !f.noStdout,
		CaptureStderr:     !f.noStderr,
		DrainConcurrently: cfg.DrainConcurrently,
	}
	res, spawnErr := spawn.New(backend, spawn.WithLogger(log)).Spawn(req)

	if err := render(cmd, f, report.New(backend, req, res, spawnErr, dec), res, dec); err != nil {
		return err
	}
	return exitStatus(res, spawnErr)
}

func render(cmd *cobra.Command, f *flags, r *report.Report, res *spawn.Result, dec *report.Decoder) error {
	out := cmd.OutOrStdout()
	switch {
	case f.json:
		data, err := r.JSON()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case f.table:
		_, err := io.WriteString(out, r.Table())
		return err
	}

	// Raw mode writes the bytes as captured unless a charset was chosen.
	if r.Stdout != nil {
		if err := writeStream(out, res.Stdout, r.Stdout, dec); err != nil {
			return err
		}
	}
	if r.Stderr != nil {
		if err := writeStream(cmd.ErrOrStderr(), res.Stderr, r.Stderr, dec); err != nil {
			return err
		}
	}
	return nil
}

func writeStream(w io.Writer, raw []byte, decoded *string, dec *report.Decoder) error {
	var err error
	if dec == nil {
		_, err = w.Write(raw)
	} else {
		_, err = io.WriteString(w, *decoded)
	}
	return err
}

// exitStatus maps the outcome to the process exit status.
func exitStatus(res *spawn.Result, err error) error {
	switch {
	case !res.Started:
		return &ExitError{Code: ExitNotStarted, Err: err}
	case err != nil:
		code := res.ExitCode
		if code <= 0 {
			code = 1
		}
		return &ExitError{Code: code, Err: err}
	case res.ExitCode != 0:
		return &ExitError{Code: res.ExitCode}
	}
	return nil
}
