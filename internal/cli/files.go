package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-ini/pkg/ini"
)

// stdinPath reads the document from standard input.
const stdinPath = "-"

// readDocument reads and parses path. It also returns the raw text.
func (a *app) readDocument(cmd *cobra.Command, path string) (*ini.Document, string, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := ini.ParseBytes(data)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Debug("parsed document", "file", path, "bytes", len(data), "sections", len(doc.SectionNames()))
	return doc, string(data), nil
}

// writeFile replaces path with data, keeping the file mode.
func (a *app) writeFile(path string, data []byte) error {
	if path == stdinPath {
		return fmt.Errorf("cannot write back to standard input")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	a.logger.Debug("wrote document", "file", path, "bytes", len(data))
	return nil
}

// editOptions are the output flags shared by editing commands.
type editOptions struct {
	write bool
	diff  bool
}

func (o *editOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.write, "write", "w", false, "write the result back to the file")
	cmd.Flags().BoolVar(&o.diff, "diff", false, "print a diff instead of the document")
}

// finish emits an edited document: a diff, the full text, or nothing when
// the file was written back.
func (a *app) finish(cmd *cobra.Command, opts editOptions, path, before string, doc *ini.Document) error {
	after := doc.String()
	out := cmd.OutOrStdout()

	if opts.diff {
		if err := a.writeDiff(out, path, before, after); err != nil {
			return err
		}
	}
	if opts.write {
		if before == after {
			a.logger.Debug("document unchanged", "file", path)
			return nil
		}
		return a.writeFile(path, []byte(after))
	}
	if !opts.diff {
		_, err := io.WriteString(out, after)
		return err
	}
	return nil
}
