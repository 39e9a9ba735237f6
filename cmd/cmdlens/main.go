package main

import (
	"github.com/DevSymphony/cmdlens/internal/cmd"

	// Bootstrap: register LLM providers
	_ "github.com/DevSymphony/cmdlens/internal/bootstrap"
)

// Version is set by build -ldflags "-X main.Version=x.y.z"
var Version = "dev"

func main() {
	cmd.SetVersion(Version)
	cmd.Execute()
}
