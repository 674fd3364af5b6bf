package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lookbusy1344/c8asm/loader"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble <input.c8> <output.rom>",
	Short: "Assemble a CHIP-8 source file into a raw ROM image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssemble(args[0], args[1])
	},
}

// quietFilter drops lines beginning with "warn " so --quiet still lets
// fatal errors through, per config.Config.Diagnostics.Quiet's contract.
type quietFilter struct {
	out io.Writer
}

func (w *quietFilter) Write(p []byte) (int, error) {
	scanner := bufio.NewScanner(bytes.NewReader(p))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "warn ") {
			continue
		}
		fmt.Fprintln(w.out, line)
	}
	return len(p), nil
}

func runAssemble(inputPath, outputPath string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var diagOut io.Writer = os.Stdout
	if cfg.Diagnostics.Quiet {
		diagOut = &quietFilter{out: os.Stdout}
	}

	if err := loader.AssembleFile(inputPath, outputPath, diagOut); err != nil {
		return fmt.Errorf("assemble: %w", err)
	}

	return nil
}
