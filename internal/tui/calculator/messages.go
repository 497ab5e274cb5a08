package calculator

import (
	"github.com/msto63/mRechner/internal/background"
	"github.com/msto63/mRechner/internal/history"
)

// Message types for tea.Cmd async operations

// historyLoadedMsg carries the stored history, oldest first
type historyLoadedMsg struct {
	entries []history.Entry
	err     error
}

// historySavedMsg is sent after a calculation was recorded
type historySavedMsg struct {
	entry history.Entry
	err   error
}

// historyClearedMsg is sent after the history was cleared
type historyClearedMsg struct {
	err error
}

// backgroundLoadedMsg is sent when an image was decoded
type backgroundLoadedMsg struct {
	path   string
	reload bool
	err    error
}

// backgroundChangedMsg is sent when the watched image file changed
type backgroundChangedMsg struct {
	watcher *background.Watcher
	path    string
}

// watcherErrMsg reports a file watch error
type watcherErrMsg struct {
	watcher *background.Watcher
	err     error
}

// watcherClosedMsg is sent when a watcher's channels closed
type watcherClosedMsg struct{}

// clipboardMsg reports a finished copy or paste
type clipboardMsg struct {
	paste bool
	text  string
	err   error
}

// settingsSavedMsg is sent after the user settings were written
type settingsSavedMsg struct {
	err error
}

// clearStatusMsg hides the status line unless a newer status replaced it
type clearStatusMsg struct {
	id int
}
