package main

import (
	"github.com/mj1618/axcore/cmd"
	_ "github.com/mj1618/axcore/internal/platform/darwin"
)

func main() {
	cmd.Execute()
}
