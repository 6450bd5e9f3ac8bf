package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shapestone/shape-ini/internal/config"
	"github.com/shapestone/shape-ini/pkg/ini"
)

func newExportCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export sections and values as JSON, YAML or TOML",
		Long: `Export the sections and values of FILE. Comments and formatting are
dropped; with duplicates the first section or key wins.

YAML output keeps document order. JSON and TOML output is sorted.`,
		Example: `  inied export app.ini -o yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := a.readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			format := output
			if format == "" {
				format = a.cfg.Output
			}
			return export(cmd.OutOrStdout(), doc, format)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: json, yaml or toml (default from config)")
	return cmd
}

func export(w io.Writer, doc *ini.Document, format string) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc.ToObject())

	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(orderedYAML(doc)); err != nil {
			return err
		}
		return enc.Close()

	case config.OutputTOML:
		return toml.NewEncoder(w).Encode(doc.ToObject())
	}
	return fmt.Errorf("unknown output format %q", format)
}

// orderedYAML builds a mapping node that keeps sections and keys in document
// order.
func orderedYAML(doc *ini.Document) *yaml.Node {
	obj := doc.ToObject()
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range doc.SectionNames() {
		section := &yaml.Node{Kind: yaml.MappingNode}
		for _, key := range doc.Keys(name) {
			section.Content = append(section.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: obj[name][key]},
			)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			section,
		)
	}
	return root
}
