package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lookbusy1344/c8asm/diag"
	"github.com/lookbusy1344/c8asm/loader"
	"github.com/lookbusy1344/c8asm/parser"
	"github.com/lookbusy1344/c8asm/tools"
)

var lintCmd = &cobra.Command{
	Use:   "lint <input.c8>",
	Short: "Report duplicate and unused labels/sprites without assembling",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		source, err := loader.ReadSource(args[0])
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		d := diag.New(source, &buf)
		prog, err := parser.Parse(source, d)
		if err != nil {
			cmd.Print(buf.String())
			return fmt.Errorf("lint: %w", err)
		}

		issues := tools.Lint(prog, source, cfg)
		for _, issue := range issues {
			cmd.Println(issue.String())
		}

		if tools.HasErrors(issues) {
			return fmt.Errorf("lint: found fatal issues")
		}
		if cfg.Diagnostics.WarningsAsErrors && len(issues) > 0 {
			return fmt.Errorf("lint: found warnings and warnings_as_errors is set")
		}

		return nil
	},
}
