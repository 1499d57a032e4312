package display

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/harrison/lff/internal/models"
)

// NoFilesFoundMessage is printed instead of a listing when nothing matched.
const NoFilesFoundMessage = "No files found for the specified arguments!"

// SizeFormat selects how byte counts are rendered.
type SizeFormat struct {
	Pretty  bool // human-readable units instead of raw bytes
	BaseTen bool // kB/MB (1000) instead of KiB/MiB (1024); only with Pretty
}

// FormatSize renders a byte count according to the format.
func FormatSize(size uint64, format SizeFormat) string {
	if !format.Pretty {
		return strconv.FormatUint(size, 10)
	}
	if format.BaseTen {
		return humanize.Bytes(size)
	}
	return humanize.IBytes(size)
}

// Printer receives finished output lines.
type Printer interface {
	Println(line string)
}

// WriterPrinter prints each line to an io.Writer followed by a newline.
type WriterPrinter struct {
	W io.Writer
}

func (p WriterPrinter) Println(line string) {
	fmt.Fprintln(p.W, line)
}

// RecordingPrinter keeps every printed line in memory.
type RecordingPrinter struct {
	mu    sync.Mutex
	lines []string
}

func (p *RecordingPrinter) Println(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lines = append(p.lines, line)
}

// Lines returns a copy of the lines printed so far.
func (p *RecordingPrinter) Lines() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.lines...)
}

// RenderListing prints one line per record: the size left-aligned in a
// column as wide as the widest size, two spaces, then the quoted name.
// An empty slice prints NoFilesFoundMessage.
func RenderListing(records []models.FileRecord, format SizeFormat, printer Printer) {
	if len(records) == 0 {
		printer.Println(NoFilesFoundMessage)
		return
	}

	sizes := make([]string, len(records))
	width := 0
	for i, rec := range records {
		sizes[i] = FormatSize(rec.Size, format)
		if n := len(sizes[i]); n > width {
			width = n
		}
	}

	for i, rec := range records {
		printer.Println(fmt.Sprintf("%-*s  %q", width, sizes[i], rec.Name))
	}
}
