package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/kobzarvs/spanline/internal/app"
)

func main() {
	fs := pflag.NewFlagSet("spanline", pflag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: spanline [--debug] [--language NAME] [FILE]")
		fs.PrintDefaults()
	}
	debug := fs.Bool("debug", false, "write debug logs")
	language := fs.StringP("language", "l", "", "language profile to use instead of the file type")
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() > 1 {
		fs.Usage()
		os.Exit(2)
	}
	opts := app.Options{Path: fs.Arg(0), Language: *language, Debug: *debug}
	if err := app.New(opts).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "spanline:", err)
		os.Exit(1)
	}
}
