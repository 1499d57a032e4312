// Package display renders lff results and warnings for the terminal.
//
// # Listings
//
// RenderListing prints one line per record through a Printer. Sizes are
// formatted once, then left-aligned to the widest one, and names are quoted:
//
//	1183  "test_resources/.hidden_dir/spider.txt"
//	544   "test_resources/snow.txt"
//
// With SizeFormat.Pretty the sizes use binary units (KiB, MiB) from
// go-humanize, or decimal units (kB, MB) when BaseTen is also set. An empty
// result prints NoFilesFoundMessage instead.
//
// WriterPrinter sends lines to any io.Writer; RecordingPrinter collects them
// for tests.
//
// # Warning Messages
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "Showing the first 5 matching files found",
//	    Message:    "Without a sort method the search stops early.",
//	    Suggestion: "Add --sort-method size",
//	}
//	warning.Display(os.Stderr)
//
// Warnings are yellow through fatih/color and fall back to plain text when
// NO_COLOR is set or output is not a terminal.
package display
