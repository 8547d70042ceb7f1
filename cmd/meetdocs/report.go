package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/phrazzld/meetdocs/internal/domain"
	"github.com/phrazzld/meetdocs/internal/platform/filestore"
)

const rule = "============================================================"

// writeReport prints every successful document followed by the failed tasks.
func writeReport(w io.Writer, rs *domain.ResultSet, elapsed time.Duration) {
	fmt.Fprintf(w, "Run %s finished in %s\n", rs.RunID(), elapsed.Round(time.Millisecond))

	for _, doc := range rs.Successful() {
		fmt.Fprintf(w, "\n%s\n%s (%s, %s)\n%s\n", rule, strings.ToUpper(doc.Key), doc.Provider, describeAttempts(doc), rule)
		fmt.Fprintln(w, doc.Content)
	}

	failed := rs.Failed()
	if len(failed) > 0 {
		fmt.Fprintf(w, "\n%d of %d tasks failed:\n", len(failed), rs.Len())
		for _, doc := range failed {
			fmt.Fprintf(w, "  - %s (%s, %s): %s\n", doc.Key, doc.Provider, doc.FailureKind, doc.FailureReason)
		}
	}
}

// writeSaved prints the files written by the store.
func writeSaved(w io.Writer, dir string, saved []filestore.SavedFile) {
	if len(saved) == 0 {
		return
	}

	var total int64
	for _, f := range saved {
		total += f.Size
	}

	fmt.Fprintf(w, "\nSaved %d documents (%s) to %s:\n", len(saved), humanize.Bytes(uint64(total)), dir)
	for _, f := range saved {
		fmt.Fprintf(w, "  %s  %s\n", f.Path, humanize.Bytes(uint64(f.Size)))
	}
}

func describeAttempts(doc domain.GeneratedDocument) string {
	elapsed := doc.Elapsed.Round(time.Millisecond)
	if doc.Attempts <= 1 {
		return elapsed.String()
	}
	return fmt.Sprintf("%s attempt, %s", humanize.Ordinal(doc.Attempts), elapsed)
}
