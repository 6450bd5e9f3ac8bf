package cli

import (
	"encoding/json"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/spf13/cobra"

	"github.com/shapestone/shape-ini/pkg/ini"
)

func newQueryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "query FILE EXPR",
		Short: "Evaluate an expression over the values of a file",
		Long: `Evaluate EXPR with every section of FILE in scope as a map of string
values. Use index syntax for names that are not identifiers.

Besides the expr-lang builtins, sections() and keys(section) list names in
document order.`,
		Example: `  inied query app.ini 'server.port == "80"'
  inied query app.ini 'server["max conn "] ?? "unset"'
  inied query app.ini 'len(sections())'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := a.readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			result, err := evaluate(doc, args[1])
			if err != nil {
				return err
			}
			return printResult(cmd, result)
		},
	}
}

// queryEnv exposes a document to expressions.
func queryEnv(doc *ini.Document) map[string]any {
	env := make(map[string]any)
	for name, entries := range doc.ToObject() {
		section := make(map[string]any, len(entries))
		for key, value := range entries {
			section[key] = value
		}
		env[name] = section
	}
	env["sections"] = func() []string { return doc.SectionNames() }
	env["keys"] = func(section string) []string { return doc.Keys(section) }
	return env
}

func evaluate(doc *ini.Document, input string) (any, error) {
	env := queryEnv(doc)
	program, err := expr.Compile(input, expr.Env(env))
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", input, err)
	}
	result, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("evaluate %q: %w", input, err)
	}
	return result, nil
}

// printResult prints strings bare and everything else as JSON.
func printResult(cmd *cobra.Command, result any) error {
	out := cmd.OutOrStdout()
	if s, ok := result.(string); ok {
		_, err := fmt.Fprintln(out, s)
		return err
	}
	data, err := json.Marshal(result)
	if err != nil {
		_, err = fmt.Fprintln(out, result)
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
