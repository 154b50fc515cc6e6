package bridge

import (
	"context"
	"errors"
	"runtime/debug"

	"mdnotes/internal/domain"
	"mdnotes/internal/errhandler"
	"mdnotes/internal/storage"
)

// Host is the host-side adapter: it runs each operation against the note
// backend and translates every failure into a result payload.
type Host struct {
	ctx     context.Context
	notes   Notes
	opener  Opener
	version string
	errs    *errhandler.Handler
}

var _ Operations = (*Host)(nil)

// NewHost creates a Host. ctx is the base context for backend calls and
// error reports; errs may be nil.
func NewHost(ctx context.Context, notes Notes, opener Opener, version string, errs *errhandler.Handler) *Host {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Host{ctx: ctx, notes: notes, opener: opener, version: version, errs: errs}
}

func (h *Host) GetAppVersion() string {
	return h.version
}

func (h *Host) TestIPC() domain.IPCResult {
	h.errs.Debug(h.ctx, "testIPC called", errhandler.CategoryIPC, nil)
	return domain.IPCResult{Result: domain.OK(), Message: "IPC is working"}
}

func (h *Host) SaveMarkdown(id, title, content string) domain.SaveResult {
	path, err := h.notes.Save(h.ctx, id, title, content)
	if err != nil {
		d := h.failure("saveMarkdown", err, &domain.ErrorDetails{ID: id, Path: path})
		return domain.SaveResult{Result: domain.Fail(err.Error(), d)}
	}
	h.errs.Info(h.ctx, "note saved", errhandler.CategoryFileSystem, map[string]any{"id": id, "path": path})
	return domain.SaveResult{Result: domain.OK(), FilePath: path}
}

func (h *Host) LoadAllMarkdown() domain.LoadResult {
	notes, err := h.notes.LoadAll(h.ctx)
	if err != nil {
		dir, _ := h.notes.EnsureDir()
		d := h.failure("loadAllMarkdown", err, &domain.ErrorDetails{Path: dir})
		return domain.LoadResult{Result: domain.Fail(err.Error(), d)}
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	return domain.LoadResult{Result: domain.OK(), Notes: notes}
}

func (h *Host) DeleteMarkdown(id string) domain.Result {
	path, err := h.notes.Delete(h.ctx, id)
	if err != nil {
		d := h.failure("deleteMarkdown", err, &domain.ErrorDetails{ID: id, Path: path})
		return domain.Fail(err.Error(), d)
	}
	h.errs.Info(h.ctx, "note deleted", errhandler.CategoryFileSystem, map[string]any{"id": id, "path": path})
	return domain.OK()
}

func (h *Host) GetMarkdownDir() domain.DirResult {
	dir, err := h.notes.EnsureDir()
	if err != nil {
		h.failure("getMarkdownDir", err, &domain.ErrorDetails{Path: dir})
		return domain.DirResult{Result: domain.Fail(err.Error(), nil)}
	}
	return domain.DirResult{Result: domain.OK(), Path: dir}
}

func (h *Host) OpenMarkdownDir() domain.Result {
	dir, err := h.notes.EnsureDir()
	if err == nil {
		if h.opener == nil {
			err = errors.New("no opener available")
		} else {
			err = h.opener.Open(h.ctx, dir)
		}
	}
	if err != nil {
		h.failure("openMarkdownDir", err, &domain.ErrorDetails{Path: dir})
		return domain.Fail(err.Error(), nil)
	}
	return domain.OK()
}

// failure completes d with the error classification, reports the failure
// to the host handler and returns d.
func (h *Host) failure(op string, err error, d *domain.ErrorDetails) *domain.ErrorDetails {
	d.ErrorName = storage.ErrorName(err)
	if h.errs != nil && h.errs.IsDev() {
		d.ErrorStack = string(debug.Stack())
	}

	cat := errhandler.CategoryFileSystem
	if errors.Is(err, storage.ErrInvalidID) {
		cat = errhandler.CategoryValidation
	}
	fields := map[string]any{"op": op, "errorName": d.ErrorName}
	if d.ID != "" {
		fields["id"] = d.ID
	}
	if d.Path != "" {
		fields["path"] = d.Path
	}
	h.errs.Capture(h.ctx, err, cat, fields)
	return d
}
