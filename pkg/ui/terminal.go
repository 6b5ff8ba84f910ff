// Package ui renders command output for the terminal.
package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	cyan    = lipgloss.Color("#00FFFF")
	magenta = lipgloss.Color("#FF00FF")
	green   = lipgloss.Color("#39FF14")
	yellow  = lipgloss.Color("#FFFF00")
	orange  = lipgloss.Color("#FF6700")
	red     = lipgloss.Color("#FF0000")
	dim     = lipgloss.Color("#B0B0B0")

	labelStyle   = lipgloss.NewStyle().Foreground(cyan).Bold(true)
	valueStyle   = lipgloss.NewStyle().Foreground(yellow)
	successStyle = lipgloss.NewStyle().Foreground(green).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(red).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(orange).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(magenta).Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Foreground(dim).Padding(0, 1)
)

// Printer writes styled lines to out
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to out
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Error prints an error message, with detail when given
func (p *Printer) Error(msg string, detail ...interface{}) {
	p.line(errorStyle, msg, detail)
}

// Success prints a success message
func (p *Printer) Success(msg string) {
	p.line(successStyle, msg, nil)
}

// Warning prints a warning message, with detail when given
func (p *Printer) Warning(msg string, detail ...interface{}) {
	p.line(warningStyle, msg, detail)
}

// Info prints a label/value pair
func (p *Printer) Info(label string, value interface{}) {
	fmt.Fprintf(p.out, "%s: %s\n", labelStyle.Render(label), valueStyle.Render(fmt.Sprint(value)))
}

// Table prints rows under headers with a rounded border
func (p *Printer) Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(magenta)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(p.out, t.String())
}

func (p *Printer) line(style lipgloss.Style, msg string, detail []interface{}) {
	if len(detail) > 0 {
		msg = msg + ": " + fmt.Sprint(detail[0])
	}
	fmt.Fprintln(p.out, style.Render(msg))
}

// Count formats n for table cells
func Count(n int) string {
	return strconv.Itoa(n)
}
