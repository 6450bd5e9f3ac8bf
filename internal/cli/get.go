package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-ini/pkg/ini"
)

func newGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get FILE SECTION KEY",
		Short: "Print the value of a key",
		Long: `Print the value of KEY in SECTION. Names match exactly, including any
spaces kept before '='. With duplicates the first occurrence is used.`,
		Example: `  inied get app.ini server port`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := a.readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			value, ok := doc.Get(args[1], args[2])
			if !ok {
				return fmt.Errorf("%w: [%s] %s", ini.ErrNotFound, args[1], args[2])
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}
