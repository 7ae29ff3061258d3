package main

import (
	"os"

	"honnef.co/go/lookupcurve/cmd/lookupcurve/app"
)

func main() {
	command := app.NewLookupCurveCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
