package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mickamy/sqlcount/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, cli.ErrExpectationsFailed) {
			_, _ = fmt.Fprintln(os.Stderr, "sqlcount:", err)
		}
		os.Exit(1)
	}
}
