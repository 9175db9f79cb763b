package tui

import "github.com/Veraticus/fraudwatch/internal/model"

// predictionResultMsg carries the response to one submission.
type predictionResultMsg struct {
	err    error
	result *model.PredictionResult
	seq    uint64
}

// historyUpdatedMsg means the store may hold a newer snapshot. The model reads
// the store rather than the message so late deliveries never roll it back.
type historyUpdatedMsg struct {
	source string
}

// historyWarningMsg is a non-fatal history failure from the store.
type historyWarningMsg struct {
	err error
}

// exportDoneMsg reports a written export file.
type exportDoneMsg struct {
	err  error
	kind string
	path string
}
