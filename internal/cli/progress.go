package cli

import (
	"time"

	"github.com/briandowns/spinner"
)

// startProgress shows a spinner on stderr while a fetch runs. The returned
// func stops it and is safe to call when progress is disabled.
func (a *app) startProgress(msg string) func() {
	if !a.progress {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond, spinner.WithWriter(a.stderr))
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}
