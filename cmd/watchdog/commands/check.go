package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/watchdog/watchdog/internal/ctxlog"
	"github.com/watchdog/watchdog/internal/scan"
	"github.com/watchdog/watchdog/internal/wiring"
)

func checkCmd() *cobra.Command {
	var holeheBin string
	var full bool

	cmd := &cobra.Command{
		Use:   "check <email>",
		Short: "Run holehe for one email and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.TrimSpace(args[0])
			if email == "" {
				return fmt.Errorf("email required")
			}
			if holeheBin != "" {
				cfg.HoleheBin = holeheBin
			}

			w, err := wiring.New(cmd.Context(), cfg, os.Stderr)
			if err != nil {
				return err
			}
			defer w.Close()
			ctx := ctxlog.WithLogger(cmd.Context(), w.Logger)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if full {
				if !scan.ValidEmail(email) {
					return fmt.Errorf("invalid email format: %q", email)
				}
				res, err := w.Scanner.Scan(ctx, email)
				if err != nil {
					return err
				}
				return enc.Encode(res)
			}

			res, err := w.Checker.Check(ctx, email)
			if err != nil {
				return fmt.Errorf("holehe execution failed: %w", err)
			}
			return enc.Encode(res)
		},
	}

	cmd.Flags().StringVar(&holeheBin, "holehe", "", "holehe executable name or path")
	cmd.Flags().BoolVar(&full, "scan", false, "run the full scan (risk score and explanation)")
	return cmd
}
