package command

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hiroshilabs/luashade/internal/obfuscate"
)

func obfuscateCommand() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "obfuscate [FILE]",
		Short: "Obfuscate a Lua file",
		Long: "Obfuscates the provided Lua source file, or standard input when no file is\n" +
			"given, and writes the result to standard output (or to -o).",

		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source []byte
			var err error
			if len(args) == 1 {
				source, err = os.ReadFile(args[0])
			} else {
				source, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("failed to read source: %w", err)
			}

			out := obfuscate.Lua(string(source))
			if outPath == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out.Code)
				return err
			}

			const userRWPerms = 0o600
			if err = os.WriteFile(outPath, []byte(out.Code), userRWPerms); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the result to a file instead of stdout")
	return cmd
}
