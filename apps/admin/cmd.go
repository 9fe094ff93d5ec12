package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/trezcool/smartfill/core"
	"github.com/trezcool/smartfill/storage/database"
)

var (
	gooseRunFunc   = database.Migrate // mockable
	isTerminalFunc = term.IsTerminal  // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf   *core.Config
	out    io.Writer
	openDB func() (*sql.DB, error) // only subcommands that need the DB call it
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  predict -count N SAMPLE... - print the next N values of the samples")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose migration command (up, down, status...)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	predictCmd := flag.NewFlagSet("predict", flag.ContinueOnError)
	predictCmd.SetOutput(cli.out)
	predictCount := predictCmd.Int("count", 5, "How many values to predict.")

	switch args[1] {
	case "predict":
		if err := predictCmd.Parse(args[2:]); err != nil {
			if err == flag.ErrHelp {
				return errHelp
			}
			return err
		}
		if *predictCount < 0 {
			predictCmd.Usage()
			return errHelp
		}
		return cli.predict(*predictCount, predictCmd.Args())
	case "migrate":
		if len(args) < 3 {
			fmt.Fprintln(cli.out, "Usage: migrate COMMAND [ARGS]")
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func stdoutIsTerminal() bool {
	return isTerminalFunc(int(os.Stdout.Fd()))
}
