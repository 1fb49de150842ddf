package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-dynform/pkg/loader"
	"github.com/goliatone/go-dynform/pkg/renderers/tui"
)

type scriptedDriver struct {
	inputs  []string
	selects []int
	multis  [][]int
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	return next, nil
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return true, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return -1, errors.New("no select scripted")
	}
	next := d.selects[0]
	d.selects = d.selects[1:]
	return next, nil
}

func (d *scriptedDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	if len(d.multis) == 0 {
		return nil, errors.New("no multiselect scripted")
	}
	next := d.multis[0]
	d.multis = d.multis[1:]
	return next, nil
}

func (d *scriptedDriver) Info(context.Context, string) error {
	return nil
}

func runCLI(t *testing.T, a *app, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	a.stdout = stdout
	a.stderr = stderr
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err := execute(cmd)
	return stdout.String(), stderr.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRender_HTML(t *testing.T) {
	out, _, err := runCLI(t, newApp(nil, nil), "render", "testdata/form.yaml", "--action", "/save")
	require.NoError(t, err)

	assert.Contains(t, out, `<form id="d-form"`)
	assert.Contains(t, out, `action="/save"`)
	assert.Contains(t, out, `method="post"`)
	assert.Contains(t, out, `name="id_2"`)
}

func TestRender_ErrorsAndHiddenFields(t *testing.T) {
	errorsPath := writeTemp(t, "errors.json", `{"id_2": ["too large"], "general": ["try again"]}`)

	out, _, err := runCLI(t, newApp(nil, nil),
		"render", "testdata/form.yaml",
		"--errors", errorsPath,
		"--hidden", "tenant=acme",
		"--csrf", "tok123",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "too large")
	assert.Contains(t, out, "try again")
	assert.Contains(t, out, `name="tenant" value="acme"`)
	assert.Contains(t, out, `name="_csrf" value="tok123"`)
}

func TestRender_WritesOutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "form.html")

	out, _, err := runCLI(t, newApp(nil, nil), "render", "testdata/form.yaml", "-O", target)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<form")
}

func TestRender_RejectsInvalidConfig(t *testing.T) {
	cfgPath := writeTemp(t, "config.json", `{"renderer": "xml"}`)

	_, stderr, err := runCLI(t, newApp(nil, nil), "--config", cfgPath, "render", "testdata/form.yaml")
	require.Error(t, err)
	assert.Contains(t, stderr, "Error:")
}

func TestFill_PrintsSubmittedData(t *testing.T) {
	a := newApp(nil, nil)
	a.driver = &scriptedDriver{
		inputs:  []string{"", "42"},
		multis:  [][]int{{1}},
		selects: []int{2},
	}

	out, _, err := runCLI(t, a, "fill", "testdata/form.yaml")
	require.NoError(t, err)

	assert.JSONEq(t, `{"id_1": null, "id_2": 42, "id_3": ["opt2"], "id_4": "opt2"}`, out)
}

func TestFill_PrettyFormat(t *testing.T) {
	a := newApp(nil, nil)
	a.driver = &scriptedDriver{
		inputs:  []string{"1", "10"},
		multis:  [][]int{{}},
		selects: []int{1},
	}

	out, _, err := runCLI(t, a, "fill", "testdata/form.yaml", "--format", "pretty")
	require.NoError(t, err)

	assert.Equal(t, "id_1: 1\nid_2: 10\nid_3: -\nid_4: opt1\n", out)
}

func TestCheck_ReportsValidity(t *testing.T) {
	out, _, err := runCLI(t, newApp(nil, nil), "check", "testdata/form.yaml")
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"valid": true,
		"sections": [{"label": "Inputs", "valid": true, "controls": 4}],
		"data": {"id_1": null, "id_2": 10, "id_3": ["opt1", "opt2"], "id_4": "opt1"}
	}`, out)
}

func TestCheck_StrictFailsOnInvalidForm(t *testing.T) {
	path := writeTemp(t, "form.yaml", `controlSections:
  - label: Only
    controlGroups:
      - controls:
          - { name: count, type: number, required: true }
`)

	out, _, err := runCLI(t, newApp(nil, nil), "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"invalid": [`)

	_, _, err = runCLI(t, newApp(nil, nil), "check", path, "--strict")
	assert.ErrorIs(t, err, errInvalidForm)
}

func TestCheck_RejectsWrongShape(t *testing.T) {
	path := writeTemp(t, "form.json", `{"controlSections": [{"label": "x"}]}`)

	_, _, err := runCLI(t, newApp(nil, nil), "check", path)
	assert.ErrorIs(t, err, loader.ErrNotFormMeta)
}

func TestImport_YAMLRoundTrips(t *testing.T) {
	out, _, err := runCLI(t, newApp(nil, nil), "import", "testdata/openapi.yaml", "--operation", "createJob")
	require.NoError(t, err)

	meta, err := loader.Parse([]byte(out), "form.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"priority", "retries"}, meta.ControlNames())

	ref, ok := meta.Find("priority")
	require.True(t, ok)
	priority, _ := meta.Control(ref)
	assert.True(t, priority.Required)
}

func TestImport_JSONWithPreset(t *testing.T) {
	preset := writeTemp(t, "preset.yaml", `controls:
  retries:
    label: Attempts
`)

	out, _, err := runCLI(t, newApp(nil, nil),
		"import", "testdata/openapi.yaml",
		"--operation", "createJob",
		"--format", "json",
		"--preset", preset,
	)
	require.NoError(t, err)

	meta, err := loader.Parse([]byte(out), "form.json")
	require.NoError(t, err)
	ref, ok := meta.Find("retries")
	require.True(t, ok)
	retries, _ := meta.Control(ref)
	assert.Equal(t, "Attempts", retries.Label)
}

func TestImport_ListsOperations(t *testing.T) {
	out, _, err := runCLI(t, newApp(nil, nil), "import", "testdata/openapi.yaml", "--list")
	require.NoError(t, err)

	assert.Contains(t, out, "createJob")
	assert.Contains(t, out, "POST /jobs")
	assert.Contains(t, out, "body")
}

func TestImport_RequiresOperation(t *testing.T) {
	_, _, err := runCLI(t, newApp(nil, nil), "import", "testdata/openapi.yaml")
	assert.Error(t, err)
}
