package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinterMessages(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Success("Indexing complete")
	p.Error("Indexing failed", errors.New("boom"))
	p.Warning("Nothing stored")
	p.Info("Collections", 3)

	out := buf.String()
	assert.Contains(t, out, "Indexing complete")
	assert.Contains(t, out, "Indexing failed: boom")
	assert.Contains(t, out, "Nothing stored")
	assert.Contains(t, out, "Collections")
	assert.Contains(t, out, "3")
}

func TestPrinterTable(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Table(
		[]string{"collection", "rows"},
		[][]string{{"cats", Count(2)}, {"dogs", Count(0)}},
	)

	out := buf.String()
	for _, want := range []string{"collection", "rows", "cats", "2", "dogs", "0"} {
		assert.Contains(t, out, want)
	}
}
