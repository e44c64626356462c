package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/simreg/internal/cli"
	"github.com/arthur-debert/simreg/pkg/core"
	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/arthur-debert/simreg/pkg/ui/styles"
)

func main() {
	// Run every queued registration before anything looks a name up
	reg := core.MustInitialize()

	rootCmd := cli.NewRootCmd(reg)
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))

		// usage errors from cobra carry no code and get the help text
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			fmt.Fprintln(os.Stderr)
			_ = rootCmd.Help()
		}
		os.Exit(1)
	}
}
