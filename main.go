package main

import (
	"fmt"
	"os"

	"github.com/waw666waw666/reminder/cmd"
)

var (
	version   string
	commit    string
	date      string
	buildType string = "unclassified"
)

func main() {
	err := cmd.Execute(os.Args, cmd.BuildArgs{
		Version:   version,
		Commit:    commit,
		Date:      date,
		BuildType: buildType,
	})
	if err != nil {
		if err.Error() != "" {
			fmt.Printf("reminder: %s\n", err.Error())
		}
		os.Exit(1)
	}
}
