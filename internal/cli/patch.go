package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/spf13/cobra"

	"github.com/shapestone/shape-ini/pkg/ini"
)

func newPatchCommand(a *app) *cobra.Command {
	var opts editOptions

	cmd := &cobra.Command{
		Use:   "patch FILE PATCH.json",
		Short: "Apply a JSON patch to the values of a file",
		Long: `Apply PATCH.json to the JSON export of FILE and set every changed or
added value back into the document, keeping all other formatting.

A JSON object is applied as an RFC 7386 merge patch; a JSON array as an
RFC 6902 patch. Values must stay strings. Removing sections or keys is
rejected: edits only replace or append.`,
		Example: `  echo '{"server":{"port":"8080"}}' > p.json
  inied patch app.ini p.json --diff`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			doc, before, err := a.readDocument(cmd, path)
			if err != nil {
				return err
			}
			patch, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[1], err)
			}
			changed, err := applyPatch(doc, patch)
			if err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}
			a.logger.Debug("applied patch", "file", path, "changed", changed)
			return a.finish(cmd, opts, path, before, doc)
		},
	}
	opts.register(cmd)
	return cmd
}

// applyPatch patches the projection of doc and sets the differences into
// doc. It returns the number of values set.
func applyPatch(doc *ini.Document, patch []byte) (int, error) {
	original, err := json.Marshal(doc.ToObject())
	if err != nil {
		return 0, err
	}

	var patched []byte
	if trimmed := bytes.TrimSpace(patch); len(trimmed) > 0 && trimmed[0] == '[' {
		ops, err := jsonpatch.DecodePatch(trimmed)
		if err != nil {
			return 0, fmt.Errorf("decode patch: %w", err)
		}
		patched, err = ops.Apply(original)
		if err != nil {
			return 0, fmt.Errorf("apply patch: %w", err)
		}
	} else {
		patched, err = jsonpatch.MergePatch(original, patch)
		if err != nil {
			return 0, fmt.Errorf("apply merge patch: %w", err)
		}
	}

	var result map[string]map[string]string
	if err := json.Unmarshal(patched, &result); err != nil {
		return 0, fmt.Errorf("patched document must map sections to string values: %w", err)
	}

	before := doc.ToObject()
	for name, entries := range before {
		after, ok := result[name]
		if !ok {
			return 0, fmt.Errorf("removing section %q is not supported", name)
		}
		for key := range entries {
			if _, ok := after[key]; !ok {
				return 0, fmt.Errorf("removing key %q from section %q is not supported", key, name)
			}
		}
	}

	// Apply checks every name and value before editing anything.
	changes := make(map[string]map[string]string)
	count := 0
	for _, name := range sortedKeys(result) {
		for _, key := range sortedKeys(result[name]) {
			value := result[name][key]
			if old, ok := before[name][key]; ok && old == value {
				continue
			}
			if changes[name] == nil {
				changes[name] = make(map[string]string)
			}
			changes[name][key] = value
			count++
		}
	}
	if err := doc.Apply(changes); err != nil {
		return 0, err
	}
	return count, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
