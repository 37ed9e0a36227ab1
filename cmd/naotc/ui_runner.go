package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"naotc/internal/driver"
	"naotc/internal/ui"
)

type runOutcome struct {
	result *driver.Result
	err    error
}

// runWithUI drives req.ManifestPath's driver.Run on a background
// goroutine while a foreground bubbletea program renders its progress
// events, then blocks until both finish.
func runWithUI(ctx context.Context, title string, modules []string, req *driver.Request) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = driver.ChannelSink(events)
		res, err := driver.Run(ctx, &reqCopy)
		outcomeCh <- runOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, modules, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
