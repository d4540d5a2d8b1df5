package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glacierkit/glacierkit/pkg/dataset"
)

func TestRunNoArgs(t *testing.T) {
	if code := run(nil); code != ExitInvalidArgs {
		t.Errorf("expected ExitInvalidArgs, got %d", code)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if code := run([]string{"frobnicate"}); code != ExitInvalidArgs {
		t.Errorf("expected ExitInvalidArgs, got %d", code)
	}
}

func TestRunHelp(t *testing.T) {
	if code := run([]string{"help"}); code != ExitSuccess {
		t.Errorf("expected ExitSuccess, got %d", code)
	}
}

func TestFetchRequiresFiles(t *testing.T) {
	if code := run([]string{"fetch", "-progress=false"}); code != ExitInvalidArgs {
		t.Errorf("expected ExitInvalidArgs without files, got %d", code)
	}
}

func TestColormapsRequiresDir(t *testing.T) {
	if code := run([]string{"colormaps"}); code != ExitInvalidArgs {
		t.Errorf("expected ExitInvalidArgs without -dir, got %d", code)
	}
}

func TestFetchMixedSources(t *testing.T) {
	bucketDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(bucketDir, "bed.nc"), []byte("from bucket"), 0o644); err != nil {
		t.Fatalf("seed bucket dir: %v", err)
	}

	webDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(webDir, "surface.nc"), []byte("from web"), 0o644); err != nil {
		t.Fatalf("seed web dir: %v", err)
	}
	srv := httptest.NewServer(http.FileServer(http.Dir(webDir)))
	defer srv.Close()

	workDir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(workDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(old) })

	// URL keys must go to the web even when a bucket is configured.
	code := run([]string{
		"fetch", "-progress=false", "-bucket", "file://" + bucketDir,
		"bed.nc", srv.URL + "/surface.nc",
	})
	if code != ExitSuccess {
		t.Fatalf("expected ExitSuccess, got %d", code)
	}

	for name, want := range map[string]string{
		"bed.nc":     "from bucket",
		"surface.nc": "from web",
	} {
		got, err := os.ReadFile(filepath.Join(workDir, name))
		if err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
			continue
		}
		if string(got) != want {
			t.Errorf("%s content mismatch: got %q, want %q", name, got, want)
		}
	}
}

func TestTagCommand(t *testing.T) {
	dir := t.TempDir()

	ds := dataset.New("run_id_42_output.nc")
	if err := ds.AddDim("x", 2); err != nil {
		t.Fatalf("AddDim: %v", err)
	}
	if err := ds.AddVar("thickness", &dataset.Variable{Dims: []string{"x"}, Values: []float64{1, 2}}); err != nil {
		t.Fatalf("AddVar: %v", err)
	}

	inPath := filepath.Join(dir, "run_id_42_output.json")
	f, err := os.Create(inPath)
	if err != nil {
		t.Fatalf("create input: %v", err)
	}
	if err := ds.Encode(f); err != nil {
		t.Fatalf("encode input: %v", err)
	}
	f.Close()

	outPath := filepath.Join(dir, "tagged.json")
	if code := run([]string{"tag", "-in", inPath, "-out", outPath}); code != ExitSuccess {
		t.Fatalf("expected ExitSuccess, got %d", code)
	}

	out, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer out.Close()

	tagged, err := dataset.Decode(out)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if size := tagged.Dims["exp_id"]; size != 1 {
		t.Errorf("expected exp_id dimension of size 1, got %d", size)
	}
	labels := tagged.Coords["exp_id"]
	if len(labels) != 1 || !labels[0].IsInt() || labels[0].Int() != 42 {
		t.Errorf("expected integer label 42, got %v", labels)
	}
}

func TestTagCommandNoMatch(t *testing.T) {
	dir := t.TempDir()

	ds := dataset.New("nothing_to_see.nc")
	inPath := filepath.Join(dir, "input.json")
	f, err := os.Create(inPath)
	if err != nil {
		t.Fatalf("create input: %v", err)
	}
	if err := ds.Encode(f); err != nil {
		t.Fatalf("encode input: %v", err)
	}
	f.Close()

	if code := run([]string{"tag", "-in", inPath}); code != ExitTagNoMatch {
		t.Errorf("expected ExitTagNoMatch, got %d", code)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList("a, b ,,c")
	if strings.Join(got, "|") != "a|b|c" {
		t.Errorf("expected [a b c], got %v", got)
	}
}
