// Package all registers every shell command.
package all

import (
	// command providers
	_ "github.com/robotalks/servo42.go/pkg/cli/cmds/motion"
	_ "github.com/robotalks/servo42.go/pkg/cli/cmds/read"
	_ "github.com/robotalks/servo42.go/pkg/cli/cmds/setup"
)
