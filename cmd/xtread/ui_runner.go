package main

import (
	"context"
	"io"

	"xtread/internal/driver"
	"xtread/internal/ui"
)

type checkOutcome struct {
	result *driver.CheckResult
	err    error
}

// runCheckWithUI runs ParseDir in the background and renders its progress
// events on out until the run finishes.
func runCheckWithUI(ctx context.Context, out io.Writer, title string, files, paths []string, opts driver.Options) (*driver.CheckResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.ParseDir(ctx, paths, optsCopy)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	uiErr := ui.Run(out, title, files, events)
	// если UI упал раньше времени, воркеры не должны повиснуть на полном канале
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
