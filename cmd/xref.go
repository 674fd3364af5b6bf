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

var xrefCmd = &cobra.Command{
	Use:   "xref <input.c8>",
	Short: "Print a symbol cross-reference report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := loader.ReadSource(args[0])
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		d := diag.New(source, &buf)
		prog, err := parser.Parse(source, d)
		if err != nil {
			cmd.Print(buf.String())
			return fmt.Errorf("xref: %w", err)
		}

		cmd.Print(tools.Xref(prog, source).String())
		return nil
	},
}
