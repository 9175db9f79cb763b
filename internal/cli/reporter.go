package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Veraticus/fraudwatch/internal/export"
	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/Veraticus/fraudwatch/internal/preset"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
)

// Reporter writes command output.
type Reporter struct {
	writer      io.Writer
	progressOut io.Writer
	progressBar *progressbar.ProgressBar
}

// NewReporter creates a reporter writing results to w and progress to progressOut.
func NewReporter(w, progressOut io.Writer) *Reporter {
	return &Reporter{
		writer:      w,
		progressOut: progressOut,
	}
}

// PrintResult writes a verdict box for input.
func (r *Reporter) PrintResult(input model.TransactionInput, result *model.PredictionResult) {
	if _, err := fmt.Fprintln(r.writer, FormatResult(input, result)); err != nil {
		slog.Warn("Failed to write prediction result", "error", err)
	}
}

// PrintHistory writes entries as a table in the order given.
func (r *Reporter) PrintHistory(entries []model.HistoryEntry) {
	if len(entries) == 0 {
		r.println(SubtleStyle.Render("No predictions recorded yet."))
		return
	}

	table := newTable(r.writer)
	table.SetHeader([]string{"Time", "Amount", "Merchant", "Location", "Prediction", "Risk Score"})
	for _, e := range entries {
		table.Append([]string{
			export.FormatTimestamp(e),
			"$" + model.FormatAmount(e.Amount),
			e.Merchant,
			e.Location,
			e.Status,
			strconv.Itoa(e.RiskScore),
		})
	}
	table.Render()
}

// PrintPresets writes the quick-test catalog.
func (r *Reporter) PrintPresets(scenarios []preset.Scenario) {
	table := newTable(r.writer)
	table.SetHeader([]string{"Name", "Label", "Risk", "Amount", "Time", "Merchant", "Location"})
	for _, s := range scenarios {
		table.Append([]string{
			s.Name,
			s.Label,
			s.RiskHint,
			"$" + model.FormatAmount(s.Amount),
			fmt.Sprintf("%02d:00", s.Time),
			string(s.Merchant),
			string(s.Location),
		})
	}
	table.Render()
}

// StartSweep shows a progress bar for total sequential predictions.
func (r *Reporter) StartSweep(total int) {
	r.progressBar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.progressOut),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Running quick tests...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(r.progressOut); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

// StepSweep advances the progress bar by one.
func (r *Reporter) StepSweep() {
	if r.progressBar == nil {
		return
	}
	if err := r.progressBar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Println writes a line of already styled text.
func (r *Reporter) Println(text string) {
	r.println(text)
}

func (r *Reporter) println(text string) {
	if _, err := fmt.Fprintln(r.writer, text); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

// FormatResult renders a verdict with its inputs and contributing factors.
func FormatResult(input model.TransactionInput, result *model.PredictionResult) string {
	if result == nil {
		return SubtleStyle.Render("No prediction.")
	}

	status := SeverityStyle(result.Severity()).Render(result.Status)

	var b strings.Builder
	fmt.Fprintf(&b, "%s  Risk Score: %d/100\n\n", status, result.RiskScore)
	fmt.Fprintf(&b, "Transaction: $%s · %02d:00 · %s · %s · %s · %s\n",
		input.AmountText, input.Time, input.Merchant, input.Location, input.Type, input.Device)
	fmt.Fprintf(&b, "Classical Confidence: %d%%\n", result.ClassicalConfidence)
	fmt.Fprintf(&b, "Quantum Confidence:   %d%%\n", result.QuantumConfidence)
	fmt.Fprintf(&b, "Model Agreement:      %s\n\n", result.Agreement)
	b.WriteString(BoldStyle.Render("Contributing Factors:"))
	b.WriteString("\n")
	for _, reason := range result.Reasons {
		fmt.Fprintf(&b, "  • %s\n", reason)
	}
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render("Tip: " + result.Tip()))

	return RenderBox(ZapIcon+" Prediction", b.String())
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return table
}
