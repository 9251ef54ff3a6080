package main

import (
	"os"

	"github.com/slihbo/WinTrace/app"
	"github.com/slihbo/WinTrace/internal/osutil"
	"github.com/slihbo/WinTrace/internal/ui"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err != nil {
		ui.Error(err)
		os.Exit(int(osutil.ExitError))
	}
}
