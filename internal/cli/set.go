package cli

import (
	"github.com/spf13/cobra"
)

func newSetCommand(a *app) *cobra.Command {
	var opts editOptions

	cmd := &cobra.Command{
		Use:   "set FILE SECTION KEY VALUE",
		Short: "Set a value, keeping all other formatting",
		Long: `Set KEY in SECTION to VALUE. An existing entry only has its value
replaced; a missing key or section is appended as "key=value".

By default the edited document is printed. Use -w to write it back to FILE
or --diff to see what changed.`,
		Example: `  inied set app.ini server port 8080 -w
  inied set app.ini cache size 10 --diff`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, section, key, value := args[0], args[1], args[2], args[3]

			doc, before, err := a.readDocument(cmd, path)
			if err != nil {
				return err
			}
			doc.Set(section, key, value)
			a.logger.Debug("set value", "section", section, "key", key)
			return a.finish(cmd, opts, path, before, doc)
		},
	}
	opts.register(cmd)
	return cmd
}
