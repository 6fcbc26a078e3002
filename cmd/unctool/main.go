// Command unctool inspects UNC format MRI files and converts them to
// NIfTI-1.
package main

import "github.com/mriformats/go-unc/cmd/unctool/cmd"

func main() {
	cmd.Execute()
}
