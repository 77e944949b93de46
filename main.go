package main

import (
	"os"

	"github.com/ozdmrel/studyquest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
