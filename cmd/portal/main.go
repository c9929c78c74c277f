package main

import (
	"os"

	"github.com/templui/docportal/cmd/portal/cmd"
	"github.com/templui/docportal/internal/logger"
)

func main() {
	err := cmd.Execute()
	logger.Flush()
	if err != nil {
		os.Exit(1)
	}
}
