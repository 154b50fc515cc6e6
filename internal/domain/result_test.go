package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdnotes/internal/domain"
)

func marshal(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestResult_JSONShapes(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"ok", domain.OK(), `{"success":true}`},
		{"fail", domain.Fail("boom", nil), `{"success":false,"error":"boom"}`},
		{
			"fail with details",
			domain.Fail("denied", &domain.ErrorDetails{ID: "n1", Path: "/d/n1.md", ErrorName: "EACCES"}),
			`{"success":false,"error":"denied","details":{"id":"n1","path":"/d/n1.md","errorName":"EACCES"}}`,
		},
		{"save", domain.SaveResult{Result: domain.OK(), FilePath: "/d/n1.md"}, `{"success":true,"filePath":"/d/n1.md"}`},
		{"dir", domain.DirResult{Result: domain.OK(), Path: "/d"}, `{"success":true,"path":"/d"}`},
		{"ipc", domain.IPCResult{Result: domain.OK(), Message: "IPC is working"}, `{"success":true,"message":"IPC is working"}`},
		{"load empty", domain.LoadResult{Result: domain.OK()}, `{"success":true,"notes":[]}`},
		{"load failure", domain.LoadResult{Result: domain.Fail("gone", nil)}, `{"success":false,"error":"gone"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.JSONEq(t, tc.want, marshal(t, tc.in))
		})
	}
}

func TestLoadResult_NotesSerialized(t *testing.T) {
	r := domain.LoadResult{Result: domain.OK(), Notes: []domain.Note{
		{ID: "a", Title: "A", Content: "x", Date: "2024-01-01T00:00:00Z"},
	}}
	assert.JSONEq(t,
		`{"success":true,"notes":[{"id":"a","title":"A","content":"x","date":"2024-01-01T00:00:00Z"}]}`,
		marshal(t, r))
}

func TestFail_DefaultsMessage(t *testing.T) {
	r := domain.Fail("", nil)
	assert.False(t, r.Success)
	assert.Equal(t, "unknown error", r.Error)
	assert.True(t, r.Valid())
}

func TestResult_Valid(t *testing.T) {
	assert.True(t, domain.OK().Valid())
	assert.False(t, domain.Result{Success: true, Error: "both"}.Valid())
	assert.False(t, domain.Result{}.Valid())

	assert.True(t, domain.SaveResult{Result: domain.OK(), FilePath: "/p"}.Valid())
	assert.False(t, domain.SaveResult{Result: domain.OK()}.Valid())
	assert.False(t, domain.SaveResult{Result: domain.Fail("x", nil), FilePath: "/p"}.Valid())

	assert.True(t, domain.LoadResult{Result: domain.OK()}.Valid())
	assert.False(t, domain.LoadResult{Result: domain.Fail("x", nil), Notes: []domain.Note{}}.Valid())

	assert.True(t, domain.DirResult{Result: domain.Fail("x", nil)}.Valid())
	assert.False(t, domain.DirResult{Result: domain.OK()}.Valid())
}
