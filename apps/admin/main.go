package main

import (
	"fmt"
	"os"

	"github.com/gurumantra/backend/apps/api/di"
	"github.com/gurumantra/backend/core"
	appfs "github.com/gurumantra/backend/fs"
)

func main() {
	c := di.New(core.NewConfig)
	must(c.Invoke(func(conf *core.Config, logger core.Logger) {
		core.ParseEmailTemplates(appfs.FS, appfs.EmailTemplatesDir, conf.Debug, logger)
	}))

	cli := newCommandLine(c, os.Stdout)
	if err := cli.run(os.Args[1:]); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
