package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/simreg/internal/cli"
	"github.com/arthur-debert/simreg/internal/version"
	"github.com/arthur-debert/simreg/pkg/registry"
	"github.com/arthur-debert/simreg/pkg/simreg"
)

func main() {
	// the man page only needs the command tree, not populated registries
	rootCmd := cli.NewRootCmd(simreg.NewRegistries(registry.Overwrite))

	header := &doc.GenManHeader{
		Title:   "SIMREG",
		Section: "1",
		Source:  "simreg " + version.Version,
		Manual:  "simreg manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
