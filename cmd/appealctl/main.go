package main

import (
	"os"

	"github.com/NabievDev/NewPeople-sub000/internal/cli"
	"github.com/NabievDev/NewPeople-sub000/pkg/log"
)

func main() {
	cmd := cli.NewRootCmd()
	err := cmd.Execute()
	log.Sync()
	if err != nil {
		os.Exit(1)
	}
}
