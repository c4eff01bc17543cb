// Package main is the entry point for the fadeshow application.
package main

import (
	"github.com/fadeshow-cli/fadeshow/cmd"
	"github.com/fadeshow-cli/fadeshow/config"
	"github.com/fadeshow-cli/fadeshow/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
