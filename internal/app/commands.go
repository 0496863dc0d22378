package app

import (
	"context"

	"github.com/Nadercr7/Shamel/internal/prefs"
	tea "github.com/charmbracelet/bubbletea"
)

// Messages delivered to the Bubbletea program. Session messages only signal a change;
// the model reads the current state from the session when it renders.

// chatChangedMsg indicates the assistant transcript or loading state changed
type chatChangedMsg struct{}

// speakingChangedMsg indicates speech output started or stopped
type speakingChangedMsg struct{}

// speechErrorMsg carries a synthesis or playback failure to show the user
type speechErrorMsg struct {
	err error
}

// listeningChangedMsg indicates the microphone started or stopped listening
type listeningChangedMsg struct{}

// transcriptMsg carries the latest finalized dictation
type transcriptMsg struct {
	text string
}

// prefsChangedMsg carries a new preferences snapshot
type prefsChangedMsg struct {
	snap prefs.Snapshot
}

// summaryDoneMsg indicates the summarizer finished
type summaryDoneMsg struct {
	summary string
	err     error
}

// summarizeCmd returns a command to summarize the document at path
func summarizeCmd(app *App, path string) tea.Cmd {
	return func() tea.Msg {
		summary, err := app.Summarize(context.Background(), path)
		return summaryDoneMsg{summary: summary, err: err}
	}
}
