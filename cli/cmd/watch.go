package cmd

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/rjeczalik/notify"

	"github.com/ardnew/ledgerscript/log"
)

// watchDelay coalesces bursts of file events (editors often write a file in
// several steps) into one recompilation.
const watchDelay = 100 * time.Millisecond

// watch calls fn once, then again after each change to one of paths, until
// ctx is done. Errors returned by fn are logged and do not stop watching.
//
// The parent directory of each path is watched rather than the file itself,
// so that files replaced by rename keep being observed.
func watch(
	ctx context.Context,
	paths []string,
	fn func(context.Context) error,
) error {
	events := make(chan notify.EventInfo, len(paths)+1)
	defer notify.Stop(events)

	files := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{}, len(paths))

	for _, path := range paths {
		abs, err := watchPath(path)
		if err != nil {
			return ErrWatch.Wrap(err).With(slog.String("file", path))
		}

		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		err := notify.Watch(dir, events,
			notify.Write, notify.Create, notify.Rename, notify.Remove,
		)
		if err != nil {
			return ErrWatch.Wrap(err).With(slog.String("dir", dir))
		}
	}

	run := func() {
		if err := fn(ctx); err != nil {
			log.ErrorContext(ctx, "compile failed", slog.Any("error", err))

			return
		}

		log.InfoContext(ctx, "compiled", slog.Int("file_count", len(files)))
	}

	run()

	timer := time.NewTimer(watchDelay)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if _, ok := files[ev.Path()]; !ok {
				continue
			}

			log.DebugContext(ctx, "source changed",
				slog.String("file", ev.Path()),
				slog.String("event", ev.Event().String()),
			)

			timer.Reset(watchDelay)

		case <-timer.C:
			run()
		}
	}
}

// watchPath returns the absolute path of path with symlinks in its directory
// resolved, matching the paths reported by file events.
func watchPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, filepath.Base(abs)), nil
}
