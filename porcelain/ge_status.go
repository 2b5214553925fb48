package porcelain

import (
	"io"

	"github.com/brickster241/gegit/ignore"
	"github.com/brickster241/gegit/plumbing"
	"github.com/brickster241/gegit/status"
)

// StatusOptions are the inputs of 'gegit status'.
type StatusOptions struct {
	Dir string // any directory inside the working tree

	// UntrackedFiles overrides status.showUntrackedFiles when non-empty.
	UntrackedFiles string
}

// Invoked from cmd/app.go. ShowStatus handles the 'gegit status' command and writes the report to out.
func ShowStatus(out io.Writer, opts StatusOptions) error {

	repo, err := plumbing.OpenRepo(opts.Dir)
	if err != nil {
		return err
	}

	cfg, err := repo.LoadConfig()
	if err != nil {
		return err
	}

	mode := cfg.ShowUntracked
	if opts.UntrackedFiles != "" {
		if mode, err = plumbing.ParseUntrackedMode(opts.UntrackedFiles); err != nil {
			return err
		}
	}

	// Missing ignore files are treated as empty rule sets
	rules, err := ignore.Load(repo.WorkDir, cfg.ExcludesFile)
	if err != nil {
		return err
	}

	raw, err := repo.ReadRawStatus()
	if err != nil {
		return err
	}

	report, err := status.Build(raw, rules, status.Options{HideUntracked: mode == plumbing.UntrackedNo})
	if err != nil {
		return err
	}

	return status.WriteLines(out, status.Render(report))
}
