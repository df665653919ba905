package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonenv/internal/errors"
	"github.com/mcncl/jsonenv/internal/models"
)

var ignoreIndex = cmpopts.IgnoreUnexported(models.Object{})

// object builds an Object from alternating name/value arguments.
func object(pairs ...any) *models.Object {
	obj := models.NewObject()
	for i := 0; i < len(pairs); i += 2 {
		obj.Set(pairs[i].(string), pairs[i+1].(models.Value))
	}
	return obj
}

func TestParse_SimpleObject(t *testing.T) {
	doc, err := Parse(strings.NewReader(`{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`))
	require.NoError(t, err)

	expected := object(
		"name", models.String("John Doe"),
		"age", models.Number("30"),
		"isStudent", models.Bool(false),
		"city", models.Null{},
	)
	if diff := cmp.Diff(expected, doc.Root, ignoreIndex); diff != "" {
		t.Errorf("Parse() root mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_SimpleArray(t *testing.T) {
	doc, err := Parse(strings.NewReader(`[1, "test", true, null, 3.14]`))
	require.NoError(t, err)

	expected := models.Array{
		models.Number("1"),
		models.String("test"),
		models.Bool(true),
		models.Null{},
		models.Number("3.14"),
	}
	if diff := cmp.Diff(expected, doc.Root, ignoreIndex); diff != "" {
		t.Errorf("Parse() root mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_PreservesKeyOrder(t *testing.T) {
	doc, err := ParseString(`{"b": 1, "a": 2, "c": {"z": true, "y": false}}`)
	require.NoError(t, err)

	obj, ok := doc.Root.(*models.Object)
	require.True(t, ok, "root should be an object, got %T", doc.Root)
	assert.Equal(t, []string{"b", "a", "c"}, obj.Keys())

	nested, ok := obj.Members[2].Value.(*models.Object)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "y"}, nested.Keys())
}

func TestParse_MemberNamesWithNestedValues(t *testing.T) {
	doc, err := ParseString(`{"outer": {"inner": [{"deep": "v"}, {"k2": null}]}, "after": [1, {"x": "y"}], "last": "z"}`)
	require.NoError(t, err)

	expected := object(
		"outer", object(
			"inner", models.Array{
				object("deep", models.String("v")),
				object("k2", models.Null{}),
			},
		),
		"after", models.Array{models.Number("1"), object("x", models.String("y"))},
		"last", models.String("z"),
	)
	if diff := cmp.Diff(expected, doc.Root, ignoreIndex); diff != "" {
		t.Errorf("nested members mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DuplicateKeys(t *testing.T) {
	doc, err := ParseString(`{"a": 1, "b": 2, "a": 3}`)
	require.NoError(t, err)

	expected := object("a", models.Number("3"), "b", models.Number("2"))
	if diff := cmp.Diff(expected, doc.Root, ignoreIndex); diff != "" {
		t.Errorf("duplicate keys mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Primitives(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Value
	}{
		{`"hello"`, models.String("hello")},
		{`"line1\nline2"`, models.String("line1\nline2")},
		{`"été"`, models.String("été")},
		{`42`, models.Number("42")},
		{`-0.5e10`, models.Number("-0.5e10")},
		{`12345678901234567890`, models.Number("12345678901234567890")},
		{`true`, models.Bool(true)},
		{`false`, models.Bool(false)},
		{`null`, models.Null{}},
		{`  {}  `, models.NewObject()},
		{`[]`, models.Array{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc, err := ParseString(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.expected, doc.Root, ignoreIndex); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
	}{
		{"empty", "", errors.ErrEmptyInput},
		{"whitespace only", "  \n\t ", errors.ErrEmptyInput},
		{"bare word", "{invalid}", errors.ErrInvalidJSON},
		{"unquoted value", `{"invalid": json}`, errors.ErrInvalidJSON},
		{"trailing comma", `[1, 2,]`, errors.ErrInvalidJSON},
		{"truncated", `{"a": [1, 2`, errors.ErrInvalidJSON},
		{"trailing garbage", `{"a": 1} x`, errors.ErrInvalidJSON},
		{"multiple values", `{"a": 1} {"b": 2}`, errors.ErrMultipleJSON},
		{"NaN", `NaN`, errors.ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.IsParseError(err), "expected parse error, got %v", err)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1,"b":"x"}`), 0o644))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)
	assert.Equal(t, 15, doc.Size)
	assert.Equal(t, []string{"a", "b"}, doc.Root.(*models.Object).Keys())
}

func TestParseFile_Errors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte("{invalid}"), 0o644))

	t.Run("missing file is an IO error", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(dir, "missing.json"))
		require.Error(t, err)
		assert.True(t, errors.IsIOError(err))
		assert.ErrorIs(t, err, errors.ErrFileNotFound)
	})

	t.Run("directory is an IO error", func(t *testing.T) {
		_, err := ParseFile(dir)
		require.Error(t, err)
		assert.True(t, errors.IsIOError(err))
		assert.ErrorIs(t, err, errors.ErrNotAFile)
	})

	t.Run("unreadable file is an IO error", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("file permissions are not enforced for root")
		}
		locked := filepath.Join(dir, "locked.json")
		require.NoError(t, os.WriteFile(locked, []byte(`{"a":1}`), 0o644))
		require.NoError(t, os.Chmod(locked, 0o000))
		defer func() { _ = os.Chmod(locked, 0o644) }()

		_, err := ParseFile(locked)
		require.Error(t, err)
		assert.True(t, errors.IsIOError(err))
		assert.False(t, errors.IsParseError(err))
		assert.ErrorIs(t, err, os.ErrPermission)
	})

	t.Run("blank path", func(t *testing.T) {
		_, err := ParseFile("  ")
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInvalidFilePath)
	})

	t.Run("empty file is a parse error", func(t *testing.T) {
		_, err := ParseFile(empty)
		require.Error(t, err)
		assert.True(t, errors.IsParseError(err))
		assert.ErrorIs(t, err, errors.ErrEmptyInput)
	})

	t.Run("invalid content is a parse error", func(t *testing.T) {
		_, err := ParseFile(invalid)
		require.Error(t, err)
		assert.True(t, errors.IsParseError(err))
		assert.Contains(t, errors.UserFriendlyError(err), "JSON syntax error")
	})
}
