package main

import (
	"fmt"
	"os"

	"github.com/FrenchMajesty/dynamic-connectivity/cmd/dynconn/commands"
	"github.com/FrenchMajesty/dynamic-connectivity/internal/app"
)

func main() {
	if err := app.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	commands.Execute()
}
