package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-ini/pkg/ini"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate files and verify they round-trip unchanged",
		Long: `Parse each FILE and report syntax errors with their line and column.
Files that parse are serialized again and compared byte for byte; files
mixing line-ending styles are reported because writing them back would
normalize their line endings.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			styles := NewStyles(out, a.useColor(out))

			failed := 0
			for _, path := range args {
				if err := a.checkFile(cmd, path); err != nil {
					failed++
					fmt.Fprintf(out, "%s %s\n", styles.Error.Render("✗"), err)
					continue
				}
				fmt.Fprintf(out, "%s %s\n", styles.Success.Render("✓"), path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}
}

func (a *app) checkFile(cmd *cobra.Command, path string) error {
	doc, text, err := a.readDocument(cmd, path)
	if err != nil {
		var perr *ini.ParseError
		if errors.As(err, &perr) {
			a.logger.Debug("syntax error", "file", path, "offset", perr.Offset, "expected", perr.Expected)
		}
		return err
	}
	if doc.String() != text {
		return fmt.Errorf("%s: does not round-trip (mixed line endings?)", path)
	}
	return nil
}
