package main

import (
	"github.com/mj1618/desktop-annotator/cmd"
	_ "github.com/mj1618/desktop-annotator/internal/platform/darwin"
)

func main() {
	cmd.Execute()
}
