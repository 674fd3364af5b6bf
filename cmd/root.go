// Package cmd wires the lexer/parser/assembler pipeline and the tools
// package into a Cobra CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lookbusy1344/c8asm/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "c8asm <input.c8> <output.rom>",
	Short: "A two-pass assembler for the CHIP-8 virtual machine",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssemble(args[0], args[1])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (defaults to $C8ASM_CONFIG if set)")
	rootCmd.AddCommand(assembleCmd, fmtCmd, lintCmd, xrefCmd)
}

// loadConfig resolves and loads the configuration active for this
// invocation, per the --config flag / C8ASM_CONFIG precedence in
// config.Resolve.
func loadConfig() (*config.Config, error) {
	return config.Load(config.Resolve(configPath))
}

// Execute runs the root command, exiting the process with status 1 on any
// error. Unlike the original tool this implementation is built from, a
// fatal diagnostic or I/O error is reflected in the process exit code
// rather than silently returning 0.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
