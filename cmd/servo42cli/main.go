package main

import (
	"github.com/robotalks/servo42.go/pkg/cli/sh"
	"github.com/robotalks/servo42.go/pkg/port"

	_ "github.com/robotalks/servo42.go/pkg/cli/cmds/all"
)

//go-build: CGO_ENABLED=0

func init() {
	port.SetupFlags()
}

func main() {
	sh.Main()
}
