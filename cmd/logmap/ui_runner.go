package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"logmap/internal/driver"
	"logmap/internal/ui"
)

type scanOutcome struct {
	result *driver.Result
	err    error
}

// runScanWithUI runs req while a progress TUI renders its events.
func runScanWithUI(ctx context.Context, title string, req driver.Request) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan scanOutcome, 1)

	go func() {
		req.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Run(ctx, req)
		outcomeCh <- scanOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, nil, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// the UI may quit early; keep the driver from blocking on the channel
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

// runScan runs req with or without the TUI.
func runScan(ctx context.Context, title string, req driver.Request, withUI bool) (*driver.Result, error) {
	if withUI {
		return runScanWithUI(ctx, title, req)
	}
	return driver.Run(ctx, req)
}
