package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// notebookV4 is a minimal nbformat 4 notebook with a markdown cell and a
// code cell with one stream output.
const notebookV4 = `{
 "nbformat": 4,
 "nbformat_minor": 5,
 "metadata": {"kernelspec": {"language": "python", "name": "python3"}},
 "cells": [
  {"cell_type": "markdown", "metadata": {}, "source": ["# Demo\n", "Some *text*"]},
  {"cell_type": "code", "execution_count": 1, "metadata": {}, "source": ["print('hi')"],
   "outputs": [{"output_type": "stream", "name": "stdout", "text": ["hi\n"]}]}
 ]
}`

// notebookV3 is a titled nbformat 3 notebook.
const notebookV3 = `{
 "nbformat": 3,
 "metadata": {"name": "Analysis"},
 "worksheets": [{"cells": [
  {"cell_type": "heading", "level": 2, "source": "Results"},
  {"cell_type": "code", "language": "python", "input": "1 + 1", "prompt_number": 3,
   "outputs": [{"output_type": "pyout", "text": "2"}]}
 ]}]
}`

// notebookBrokenCell renders with one placeholder.
const notebookBrokenCell = `{
 "nbformat": 3,
 "worksheets": [{"cells": [
  {"cell_type": "widget", "source": "?"},
  {"cell_type": "raw", "source": "kept"}
 ]}]
}`

// testEnv returns an environment writing to buffers.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

// writeFile writes content under dir, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
