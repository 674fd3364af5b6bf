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

var fmtCmd = &cobra.Command{
	Use:   "fmt <input.c8>",
	Short: "Print the canonically formatted form of a CHIP-8 source file",
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
			return fmt.Errorf("fmt: %w", err)
		}

		cmd.Print(tools.Format(prog, cfg))
		return nil
	},
}
