package domain

import "encoding/json"

// ─────────────────────────────────────────────────────────────
// Operation results returned across the bridge
// ─────────────────────────────────────────────────────────────
//
// Every bridge operation resolves with exactly one result: either
// Success with operation data, or a failure carrying Error and
// optional Details. Failures are data, never Go errors.

// ErrorDetails is the structured diagnostic attached to a failure.
type ErrorDetails struct {
	ID         string `json:"id,omitempty"`
	Path       string `json:"path,omitempty"`
	ErrorName  string `json:"errorName,omitempty"`
	ErrorStack string `json:"errorStack,omitempty"`
}

// Result is the base tagged union embedded by every operation result.
type Result struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Details *ErrorDetails `json:"details,omitempty"`
}

// OK returns a successful result.
func OK() Result {
	return Result{Success: true}
}

// Fail returns a failed result with message and optional details.
func Fail(message string, details *ErrorDetails) Result {
	if message == "" {
		message = "unknown error"
	}
	return Result{Error: message, Details: details}
}

// Valid reports whether r is exactly one of success or failure.
func (r Result) Valid() bool {
	if r.Success {
		return r.Error == "" && r.Details == nil
	}
	return r.Error != ""
}

// IPCResult answers testIPC.
type IPCResult struct {
	Result
	Message string `json:"message,omitempty"`
}

// SaveResult answers saveMarkdown.
type SaveResult struct {
	Result
	FilePath string `json:"filePath,omitempty"`
}

// Valid also rejects a failure that still carries a file path.
func (r SaveResult) Valid() bool {
	if !r.Result.Valid() {
		return false
	}
	return r.Success == (r.FilePath != "")
}

// LoadResult answers loadAllMarkdown.
type LoadResult struct {
	Result
	Notes []Note `json:"notes"`
}

// Valid also rejects a failure that still carries notes.
func (r LoadResult) Valid() bool {
	if !r.Result.Valid() {
		return false
	}
	return r.Success || r.Notes == nil
}

// MarshalJSON always emits notes as an array on success and omits it on failure.
func (r LoadResult) MarshalJSON() ([]byte, error) {
	if !r.Success {
		return json.Marshal(r.Result)
	}
	notes := r.Notes
	if notes == nil {
		notes = []Note{}
	}
	return json.Marshal(struct {
		Success bool   `json:"success"`
		Notes   []Note `json:"notes"`
	}{Success: true, Notes: notes})
}

// DirResult answers getMarkdownDir.
type DirResult struct {
	Result
	Path string `json:"path,omitempty"`
}

// Valid also rejects a failure that still carries a path.
func (r DirResult) Valid() bool {
	if !r.Result.Valid() {
		return false
	}
	return r.Success == (r.Path != "")
}
