package main

import (
	"context"
	"fmt"
	"io"

	"github.com/SaiNageswarS/docqa-boot/session"
	"github.com/fatih/color"
)

var (
	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	labelColor   = color.New(color.FgYellow, color.Bold)
)

// printer renders session events as they arrive.
type printer struct {
	out io.Writer
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out}
}

func (p *printer) run(ctx context.Context, events <-chan session.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-events:
			p.print(event)
		}
	}
}

func (p *printer) print(event session.Event) {
	snap := event.Snapshot

	switch event.Kind {
	case session.FileSelected:
		infoColor.Fprintf(p.out, "Selected %s\n", snap.FileName)
	case session.FileRejected:
		errorColor.Fprintf(p.out, "%s\n", snap.LastError)
	case session.LanguageChanged:
		infoColor.Fprintf(p.out, "Language set to %s\n", snap.Language)
	case session.SummarizeStarted:
		infoColor.Fprintf(p.out, "Summarizing %s...\n", snap.FileName)
	case session.SummaryReady:
		successColor.Fprintf(p.out, "Summary of %s\n", snap.FileName)
		printSummary(p.out, snap)
	case session.SummaryFailed:
		errorColor.Fprintf(p.out, "%s\n", snap.LastError)
	case session.PipelineReset:
		infoColor.Fprintln(p.out, "Pipeline reset")
	case session.AnswerReceived:
		printLastTurn(p.out, snap, successColor)
	case session.AnswerFailed:
		printLastTurn(p.out, snap, errorColor)
	}
}

func printSummary(out io.Writer, snap session.Snapshot) {
	if snap.Summary == nil {
		return
	}
	for _, sec := range snap.Summary.Sections {
		labelColor.Fprintf(out, "%s\n", sec.Label)
		fmt.Fprintf(out, "  %s\n", sec.Text)
	}
}

func printLastTurn(out io.Writer, snap session.Snapshot, c *color.Color) {
	if len(snap.Transcript) == 0 {
		return
	}
	c.Fprintf(out, "bot> %s\n", snap.Transcript[len(snap.Transcript)-1].Text)
}

func printStatus(out io.Writer, snap session.Snapshot) {
	fmt.Fprintf(out, "phase: %s\nlanguage: %s\n", snap.Phase, snap.Language)
	if snap.HasFile {
		fmt.Fprintf(out, "file: %s\n", snap.FileName)
	}
	if snap.DocumentID != "" {
		fmt.Fprintf(out, "document: %s\n", snap.DocumentID)
	}
	if snap.LastError != "" {
		fmt.Fprintf(out, "error: %s\n", snap.LastError)
	}
	if snap.Answering {
		fmt.Fprintln(out, "waiting for an answer")
	}
	fmt.Fprintf(out, "turns: %d\n", len(snap.Transcript))
}

func printError(out io.Writer, err error) {
	if session.IsGated(err) {
		infoColor.Fprintf(out, "%v\n", err)
		return
	}
	errorColor.Fprintf(out, "%v\n", err)
}
