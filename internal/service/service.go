// Package service orchestrates repository calls per entity family. It is the
// layer that decides a missing record on a direct lookup is exceptional,
// converts upload failures into user-facing warnings, and dispatches
// best-effort notifications after successful writes.
package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mkrogh/boldklub/internal/metrics"
	"github.com/mkrogh/boldklub/internal/repository"
)

// fieldLabels translate upload field names into the wording members see.
var fieldLabels = map[string]string{
	"images": "billederne",
	"files":  "filerne",
}

// uploadWarnings flattens per-field upload outcomes into display warnings.
// The entity write already succeeded when this runs; a failed attachment must
// never read as a failed save.
func uploadWarnings(results repository.UploadResults, m metrics.Metrics) []string {
	failed := results.Failed()
	if len(failed) == 0 {
		return nil
	}
	warnings := make([]string, 0, len(failed))
	for _, field := range failed {
		m.IncUploadsFailed()
		label := fieldLabels[field]
		if label == "" {
			label = field
		}
		warnings = append(warnings, fmt.Sprintf("Indholdet blev gemt, men %s kunne ikke uploades. Prøv at tilføje dem igen.", label))
	}
	return warnings
}

// notifyAsync dispatches a notification without blocking the caller. The
// write's Result is already decided; a delivery failure only gets logged.
func notifyAsync(kind string, send func() error) {
	go func() {
		if err := send(); err != nil {
			log.Error("Notification dispatch failed", "kind", kind, "error", err)
		}
	}()
}

// requirePatchText validates required text fields on a partial payload: a
// patch may leave a required field untouched, but never blank it. The store
// would accept the blank value and the mapper would reject the record on
// every read after that.
func requirePatchText(fields map[string]*string) []string {
	var missing []string
	for name, value := range fields {
		if value != nil && strings.TrimSpace(*value) == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// requireText validates a mandatory free-text field, returning the offending
// field name when blank.
func requireText(fields map[string]string) []string {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
