package main

import (
	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/cli"
)

func main() {
	cli.Execute()
}
