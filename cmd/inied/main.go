// Command inied inspects and edits INI files without losing formatting.
package main

import "github.com/shapestone/shape-ini/internal/cli"

func main() {
	cli.Execute()
}
