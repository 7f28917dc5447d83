package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/orochaa/go-clack/prompts"
	"github.com/orochaa/go-clack/third_party/picocolors"
	"github.com/spf13/cobra"

	"github.com/zbiljic/semrel/internal/log"
	"github.com/zbiljic/semrel/pkg/promptsx"
)

const maxListedCommits = 15

// reporter shows progress while a command runs. Results are always
// written to the command output, independent of the reporter.
type reporter interface {
	Start(msg string)
	Stop(msg string, failed bool)
	Info(msg string)
	Note(msg string)
	List(title string, items []string)
	Outro(msg string)
}

// newReporter returns a terminal prompt reporter for interactive sessions
// and a log based reporter otherwise.
func newReporter(cmd *cobra.Command, quiet bool) reporter {
	if quiet || !interactive() {
		return &logReporter{cmd: cmd}
	}

	prompts.Intro(picocolors.BgCyan(picocolors.Black(fmt.Sprintf(" %s ", AppName))))
	// in order to show custom error
	injectIntoCommandContextWithKey(cmd, ctxKeyClackPromptStarted{}, true)

	return &clackReporter{}
}

type clackReporter struct {
	spinner *prompts.SpinnerController
}

func (r *clackReporter) Start(msg string) {
	r.spinner = prompts.Spinner(prompts.SpinnerOptions{})
	r.spinner.Start(msg)
}

func (r *clackReporter) Stop(msg string, failed bool) {
	if r.spinner == nil {
		return
	}
	code := 0
	if failed {
		code = 1
	}
	r.spinner.Stop(msg, code)
	r.spinner = nil
}

func (r *clackReporter) Info(msg string) {
	prompts.Info(msg)
}

func (r *clackReporter) Note(msg string) {
	promptsx.Note(msg)
}

func (r *clackReporter) List(title string, items []string) {
	promptsx.List(title, items, maxListedCommits)
}

func (r *clackReporter) Outro(msg string) {
	prompts.Outro(msg)
}

type logReporter struct {
	cmd *cobra.Command
}

func (r *logReporter) Start(msg string) {
	log.FromContext(r.cmd.Context()).Debug().Msg(msg)
}

func (r *logReporter) Stop(msg string, failed bool) {
	l := log.FromContext(r.cmd.Context())
	if failed {
		l.Error().Msg(msg)
		return
	}
	l.Debug().Msg(msg)
}

func (r *logReporter) Info(msg string) {
	log.FromContext(r.cmd.Context()).Info().Msg(msg)
}

func (r *logReporter) Note(msg string) {
	log.FromContext(r.cmd.Context()).Info().Msg(msg)
}

func (r *logReporter) List(title string, items []string) {
	log.FromContext(r.cmd.Context()).Debug().Strs("items", items).Msg(title)
}

func (r *logReporter) Outro(string) {}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
