package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlayout/pkg/layout"
	"github.com/goliatone/go-formlayout/pkg/testsupport"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("formlayout %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func articleArgs(command string) []string {
	return []string{
		command,
		"--schema", testsupport.Fixture(testsupport.ArticleSchema),
		"--layout", testsupport.Fixture(testsupport.ArticleConfiguration),
	}
}

func serviceConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "formlayout.yaml")
	body := "storage:\n  dsn: " + filepath.Join(dir, "formlayout.db") + "\nlogging:\n  level: error\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestNormalize(t *testing.T) {
	var rows layout.Rows
	if err := json.Unmarshal([]byte(run(t, articleArgs("normalize")...)), &rows); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	want := layout.Rows{
		{layout.Field("title", 6, "Title"), layout.Field("slug", 6, "")},
		{layout.Field("body", 12, "Body")},
		{layout.Field("views", 4, "Views"), layout.Filler(8)},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestAvailable(t *testing.T) {
	got := strings.Fields(run(t, articleArgs("available")...))
	if diff := cmp.Diff([]string{"cover", "category", "published"}, got); diff != "" {
		t.Fatalf("available mismatch (-want +got):\n%s", diff)
	}
}

func TestMainFields(t *testing.T) {
	got := run(t, articleArgs("main-fields")...)
	if !strings.Contains(got, "* title\n") {
		t.Fatalf("expected current main field to be marked:\n%s", got)
	}
	if strings.Contains(got, "body") {
		t.Fatalf("richtext must not be offered as main field:\n%s", got)
	}
}

func TestPreview(t *testing.T) {
	out := filepath.Join(t.TempDir(), "preview.html")
	run(t, append(articleArgs("preview"), "--output", out)...)
	html, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read preview: %v", err)
	}
	if !strings.Contains(string(html), `data-name="title"`) {
		t.Fatalf("expected title field in preview:\n%s", html)
	}
}

func TestImportMigrateHistory(t *testing.T) {
	cfg := serviceConfig(t)

	if got := run(t, "migrate", "--config", cfg); got != "schema version 2\n" {
		t.Fatalf("unexpected migrate output %q", got)
	}
	if got := run(t, append(articleArgs("import"), "--config", cfg)...); got != testsupport.ArticleUID+"\n" {
		t.Fatalf("unexpected import output %q", got)
	}
	if got := strings.TrimSpace(run(t, "history", testsupport.ArticleUID, "--config", cfg)); got != "null" {
		t.Fatalf("expected no revisions before any update, got %s", got)
	}
}

func TestLint(t *testing.T) {
	if got := run(t, articleArgs("lint")...); got != "" {
		t.Fatalf("expected no issues, got %q", got)
	}

	broken := filepath.Join(t.TempDir(), "broken.yaml")
	body := "uid: " + testsupport.ArticleUID + "\nlayout:\n  - - - name: title\n        size: 6\nsettings:\n  mainField: body\nmetadatas:\n  title:\n    visible: true\n"
	if err := os.WriteFile(broken, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs([]string{"lint", "--schema", testsupport.Fixture(testsupport.ArticleSchema), "--layout", broken})
	if err := cmd.ExecuteContext(context.Background()); !errors.Is(err, errLintFailed) {
		t.Fatalf("expected errLintFailed, got %v", err)
	}
	if !strings.Contains(out.String(), "error: /settings/mainField (body)") {
		t.Fatalf("expected main field issue, got:\n%s", out.String())
	}
}
