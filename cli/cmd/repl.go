package cmd

import (
	"context"
	"path/filepath"

	"github.com/ardnew/ledgerscript/cli/cmd/repl"
	"github.com/ardnew/ledgerscript/lang"
	"github.com/ardnew/ledgerscript/log"
)

// Repl starts an interactive session that compiles each entered line.
type Repl struct {
	History bool     `default:"true" help:"Persist input history in the cache directory" negatable:""`
	Files   []string `               help:"Source files whose definitions are in scope"  arg:"" name:"file" optional:"" type:"existingfile"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var sources []lang.Source

	if len(r.Files) > 0 {
		sources, err = readSources(ctx, r.Files)
		if err != nil {
			return err
		}
	}

	return repl.Run(ctx, sources, r.historyPath(ctx), log.Default())
}

// historyPath returns the history file path, or "" to keep history in memory.
func (r *Repl) historyPath(ctx context.Context) string {
	if !r.History {
		return ""
	}

	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok && dir != "" {
			return filepath.Join(dir, repl.HistoryFile)
		}
	}

	return ""
}
