package jsonshape

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMissingField    = "missing_field"    // strict decode: schema field absent from the object
	CodeTypeMismatch    = "type_mismatch"    // value kind does not match the expected shape
	CodeUnsupportedType = "unsupported_type" // type shape cannot be reduced to a supported kind
	CodeMaxDepth        = "max_depth"        // nesting exceeded the configured depth budget
	CodeInvalidUnicode  = "invalid_unicode"  // malformed UTF-8 encountered during encode
	CodeSinkFailure     = "sink_failure"     // the output sink reported an error
	CodeParseError      = "parse_error"      // the input source produced malformed data
)

// Issue represents a single codec error entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error (sink failures, parser errors).
}

// Issues is a collection of codec errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. type_mismatch at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the cause of a single-issue error chain for errors.Is/As.
func (iss Issues) Unwrap() error {
	if len(iss) == 1 {
		return iss[0].Cause
	}
	return nil
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// issuef builds a single-issue error with a formatted message.
func issuef(path, code, format string, args ...any) Issues {
	return Issues{Issue{Path: path, Code: code, Message: fmt.Sprintf(format, args...)}}
}
