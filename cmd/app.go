package main

import (
	"fmt"
	"os"

	"github.com/brickster241/gegit/plumbing"
	"github.com/brickster241/gegit/porcelain"
	"github.com/brickster241/gegit/utils/errors"
	"github.com/brickster241/gegit/utils/log"
	"github.com/urfave/cli/v2"
)

var version = "dev"

// Entry point of the application.
func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "gegit: %v\n", err)
		log.Logger().Debug(errors.ErrorStack(err))
		os.Exit(errors.ExitCode(err))
	}
}

func newApp() *cli.App {
	app := &cli.App{
		Name:    "gegit",
		Usage:   "inspect a git working tree",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"C"},
				Usage:   "run as if started in `DIR`",
				EnvVars: []string{"GEGIT_DIR"},
				Value:   ".",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "diagnostic log level written to stderr (trace, debug, info, warn, error)",
				EnvVars: []string{"GEGIT_LOG_LEVEL"},
				Value:   log.DefaultLevel.String(),
			},
		},
		Before: func(c *cli.Context) error {
			return log.SetLevel(c.String("log-level"))
		},
		Commands: []*cli.Command{
			initCommand(),
			addCommand(),
			commitCommand(),
			configCommand(),
			statusCommand(),
			diffTreeCommand(),
		},
		// Reached only when the first argument names no command
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return misuse(errors.Errorf("'%s' is not a gegit command", c.Args().First()))
			}
			return cli.ShowAppHelp(c)
		},
		OnUsageError: onUsageError,
	}
	setUsageErrorHandler(app.Commands)
	return app
}

// usageExitCode matches git's exit status for command line misuse.
const usageExitCode = 129

func usageError(usage string) error {
	return misuse(errors.Errorf("usage: %s", usage))
}

func misuse(err error) error {
	return errors.ErrorWithExitCode{Err: errors.WithStackTrace(err), ExitCode: usageExitCode}
}

// onUsageError covers flag parsing failures such as undefined flags.
func onUsageError(_ *cli.Context, err error, _ bool) error {
	return misuse(err)
}

func setUsageErrorHandler(cmds []*cli.Command) {
	for _, cmd := range cmds {
		if cmd.OnUsageError == nil {
			cmd.OnUsageError = onUsageError
		}
		setUsageErrorHandler(cmd.Subcommands)
	}
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "create an empty repository or reinitialize an existing one",
		ArgsUsage: "[<directory>]",
		Action: func(c *cli.Context) error {
			if c.NArg() > 1 {
				return usageError("gegit init [<directory>]")
			}
			dir := c.String("dir")
			if c.NArg() == 1 {
				dir = c.Args().First()
			}
			return porcelain.InitRepo(c.App.Writer, dir)
		},
	}
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "add file contents to the index",
		ArgsUsage: "<pathspec>...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return usageError("gegit add . | <file> [<file> ...]")
			}
			return porcelain.AddFiles(porcelain.AddOptions{
				Dir:   c.String("dir"),
				Paths: c.Args().Slice(),
			})
		},
	}
}

func commitCommand() *cli.Command {
	return &cli.Command{
		Name:  "commit",
		Usage: "record the index as a new commit on the current branch",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "use `MSG` as the commit message",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 0 || c.String("message") == "" {
				return usageError("gegit commit -m <message>")
			}
			return porcelain.CommitChanges(c.App.Writer, porcelain.CommitOptions{
				Dir:     c.String("dir"),
				Message: c.String("message"),
			})
		},
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "get and set repository options stored in .git/config",
		Action: func(c *cli.Context) error {
			return usageError("gegit config (get <key> | set <key> <value>)")
		},
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "print the value of a key such as user.name",
				ArgsUsage: "<key>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("gegit config get <key>")
					}
					return porcelain.GetConfig(c.App.Writer, c.String("dir"), c.Args().First())
				},
			},
			{
				Name:      "set",
				Usage:     "set the value of a key",
				ArgsUsage: "<key> <value>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return usageError("gegit config set <key> <value>")
					}
					return porcelain.SetConfig(c.String("dir"), c.Args().Get(0), c.Args().Get(1))
				},
			},
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "show the working tree status",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "untracked-files",
				Aliases: []string{"u"},
				Usage:   "show untracked files (`MODE`: no, normal, all); defaults to status.showUntrackedFiles",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 0 {
				return usageError("gegit status [--untracked-files=<mode>]")
			}
			if mode := c.String("untracked-files"); mode != "" {
				if _, err := plumbing.ParseUntrackedMode(mode); err != nil {
					return misuse(err)
				}
			}
			return porcelain.ShowStatus(c.App.Writer, porcelain.StatusOptions{
				Dir:            c.String("dir"),
				UntrackedFiles: c.String("untracked-files"),
			})
		},
	}
}

func diffTreeCommand() *cli.Command {
	return &cli.Command{
		Name:            "diff-tree",
		Usage:           "compare the content and mode of blobs found via two tree objects (not implemented)",
		ArgsUsage:       "[<options>] <tree-ish> [<tree-ish>] [<path>...]",
		SkipFlagParsing: true,
		Action: func(c *cli.Context) error {
			return porcelain.DiffTree(c.Args().Slice())
		},
	}
}
