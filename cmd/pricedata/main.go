package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"

	"github.com/google/subcommands"
)

var configPath = flag.String("config", defaultConfigPath(), "path to the YAML config file (env CONFIG_PATH)")

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&buildCmd{}, "")
	commander.Register(&locateCmd{}, "")
	commander.Register(&scheduleCmd{}, "")

	flag.Parse()
	// A bare invocation builds once.
	if flag.NArg() == 0 {
		flag.CommandLine.Parse(append(os.Args[1:], "build"))
	}
	os.Exit(int(commander.Execute(context.Background())))
}
