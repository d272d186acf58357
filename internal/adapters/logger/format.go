package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// messager is an error that reports its own message without its causes,
// as *zerr.Error does.
type messager interface {
	Message() string
}

// metadataCarrier is an error that exposes structured context.
type metadataCarrier interface {
	Metadata() map[string]any
}

// ErrorEntry is one layer of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the chain while layers report their own message.
// Layers with an empty message hand their metadata to the next entry. A
// "sentinel: cause" join contributes the sentinel's message and the walk
// continues with the cause. Any other layer is recorded with its full Error()
// text and ends the walk.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var pending map[string]any
	for current := err; current != nil; {
		if m, ok := current.(messager); ok {
			pending = mergeMetadata(pending, current)
			if m.Message() != "" {
				entries = append(entries, ErrorEntry{Message: m.Message(), Metadata: pending})
				pending = nil
			}
			current = errors.Unwrap(current)
			continue
		}

		if sentinel, cause, ok := splitJoin(current); ok {
			entries = append(entries, ErrorEntry{
				Message:  sentinel.(messager).Message(),
				Metadata: mergeMetadata(pending, sentinel),
			})
			pending = nil
			current = cause
			continue
		}

		return append(entries, ErrorEntry{Message: current.Error(), Metadata: pending})
	}

	if pending != nil {
		if len(entries) == 0 {
			return []ErrorEntry{{Message: err.Error(), Metadata: pending}}
		}
		last := &entries[len(entries)-1]
		last.Metadata = mergeMaps(last.Metadata, pending)
	}
	return entries
}

// splitJoin recognises errors built as fmt.Errorf("%w: %w", sentinel, cause)
// where sentinel is a leaf that reports its own message.
func splitJoin(err error) (error, error, bool) {
	multi, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return nil, nil, false
	}
	errs := multi.Unwrap()
	if len(errs) != 2 {
		return nil, nil, false
	}
	if _, ok := errs[0].(messager); !ok || errors.Unwrap(errs[0]) != nil {
		return nil, nil, false
	}
	return errs[0], errs[1], true
}

// mergeMetadata adds the metadata carried by err to acc.
func mergeMetadata(acc map[string]any, err error) map[string]any {
	mc, ok := err.(metadataCarrier)
	if !ok {
		return acc
	}
	return mergeMaps(acc, mc.Metadata())
}

// mergeMaps returns the union of acc and md. Keys already in acc win.
func mergeMaps(acc, md map[string]any) map[string]any {
	if len(md) == 0 {
		return acc
	}
	out := make(map[string]any, len(acc)+len(md))
	for k, v := range md {
		out[k] = v
	}
	for k, v := range acc {
		out[k] = v
	}
	return out
}

// errorAttrs flattens the metadata of every layer of err into slog attributes,
// outermost first. A key seen twice keeps its outermost value.
func errorAttrs(err error) []any {
	attrs := []any{slog.String("error", err.Error())}
	seen := map[string]bool{"error": true}
	for _, entry := range collectErrorEntries(err) {
		for _, key := range sortedKeys(entry.Metadata) {
			if seen[key] {
				continue
			}
			seen[key] = true
			attrs = append(attrs, slog.Any(key, entry.Metadata[key]))
		}
	}
	return attrs
}

// formatErrorEntries renders the first entry as the error and the rest as its causes.
func formatErrorEntries(entries []ErrorEntry) string {
	const (
		mainIndent  = "       "
		causeIndent = "      "
	)

	var lines []string
	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		indent := mainIndent
		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			indent = causeIndent
			lines = append(lines, "    → "+msgLines[0])
		}

		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range sortedKeys(entry.Metadata) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}
	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
