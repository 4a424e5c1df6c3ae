package main

import (
	"os"

	dbusnamecmd "github.com/telekom/dbusname/pkg/dbusname/cmd"
)

func main() {
	root := dbusnamecmd.NewRootCommand(dbusnamecmd.DefaultConfig())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
