package main

import (
	"fmt"
	"os"

	cairofixcmder "github.com/papercomputeco/cairofix/cmd/cairofix"
	"github.com/papercomputeco/cairofix/pkg/cliui"
)

func main() {
	cmd := cairofixcmder.NewCairofixCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", cliui.FailMark, err)
		os.Exit(1)
	}
}
