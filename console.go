package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/SaiNageswarS/docqa-boot/document"
	"github.com/SaiNageswarS/docqa-boot/session"
)

const helpText = `Commands:
  /open <path>    select a PDF
  /lang <en|id>   set the summary and answer language
  /summarize      summarize the selected file
  /reset          clear the document pipeline
  /status         show the session state
  /quit           exit
Anything else is sent as a question.`

type console struct {
	ctrl *session.Controller
	out  io.Writer
}

func newConsole(ctrl *session.Controller, out io.Writer) *console {
	return &console{ctrl: ctrl, out: out}
}

// run reads commands until in is exhausted, /quit is entered or ctx is done.
func (c *console) run(ctx context.Context, in io.Reader) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			quit, err := c.handle(line)
			// rejections are printed from the FileRejected event
			if err != nil && !errors.Is(err, document.ErrUnsupportedFileType) {
				printError(c.out, err)
			}
			if quit {
				return
			}
		}
	}
}

// handle executes one input line.
func (c *console) handle(line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, "/") {
		return false, c.ctrl.SubmitQuestion(line)
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/open":
		if arg == "" {
			return false, fmt.Errorf("usage: /open <path>")
		}
		candidate, err := document.FromFile(arg)
		if err != nil {
			return false, err
		}
		return false, c.ctrl.SelectFile(candidate)
	case "/lang":
		lang, ok := document.ParseLanguage(arg)
		if !ok {
			return false, fmt.Errorf("%w: %q", session.ErrUnsupportedLanguage, arg)
		}
		return false, c.ctrl.SetLanguage(lang)
	case "/summarize":
		return false, c.ctrl.Summarize()
	case "/reset":
		return false, c.ctrl.Reset()
	case "/status":
		snap, err := c.ctrl.Snapshot()
		if err != nil {
			return false, err
		}
		printStatus(c.out, snap)
		return false, nil
	case "/help":
		fmt.Fprintln(c.out, helpText)
		return false, nil
	case "/quit", "/exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %s, try /help", cmd)
	}
}
