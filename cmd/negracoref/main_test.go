package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zeebo/blake3"

	"github.com/revelaction/negracoref/storage"
)

const corpus = `%% test corpus
#FORMAT 4
#BOS 0
Der der ART nsm - 500
Mann Mann NN nsm HD 500
lacht lachen VVFIN 3sis HD 0
#500 -- NX -- ON 0
#EOS 0
#BOS 1
Er er PPER nsm3 ON 0 %% R=coreferential.0:500 seen
schläft schlafen VVFIN 3sis HD 0
#EOS 1
`

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.export")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	ui := UI{Out: &out, Err: &errOut}
	err := newApp(ui).RunContext(context.Background(), append([]string{"negracoref"}, args...))
	return out.String(), errOut.String(), err
}

func TestConvertStdout(t *testing.T) {
	in := writeCorpus(t, corpus)

	out, _, err := run(t, "convert", "-i", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(out, "\n")
	if !strings.HasSuffix(lines[4], "\tcoref:[(0,[0,1])]|") {
		t.Errorf("unexpected line %q", lines[4])
	}
	if !strings.HasSuffix(lines[5], "\t_") {
		t.Errorf("unexpected line %q", lines[5])
	}
	if !strings.HasSuffix(lines[0], "\t_") {
		t.Errorf("unexpected line %q", lines[0])
	}
}

func TestConvertPositional(t *testing.T) {
	in := writeCorpus(t, corpus)
	outPath := filepath.Join(t.TempDir(), "out.conll")

	stdout, _, err := run(t, "convert", in, outPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "coref:[(0,[0,1])]|") {
		t.Errorf("unexpected output %q", data)
	}
}

func TestConvertKeepCommentsJSON(t *testing.T) {
	in := writeCorpus(t, corpus)

	out, _, err := run(t, "convert", "-k", "-f", "json", "-i", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 JSON lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], `"comment":"R=coreferential.0:500 seen"`) {
		t.Errorf("expected the comment to be kept, got %s", lines[1])
	}
}

func TestConvertConfigFile(t *testing.T) {
	in := writeCorpus(t, corpus)
	cfg := filepath.Join(t.TempDir(), "negracoref.yaml")
	if err := os.WriteFile(cfg, []byte("format: json\ninput: "+in+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "--config", cfg, "convert")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, `{"id":0,`) {
		t.Errorf("expected JSON output, got %q", out)
	}
}

func TestConvertDigest(t *testing.T) {
	in := writeCorpus(t, corpus)
	outPath := filepath.Join(t.TempDir(), "out.conll")

	_, logs, err := run(t, "--log-level", "info", "convert", "-i", in, "-o", outPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(outPath)
	sum := blake3.Sum256(data)
	if !strings.Contains(logs, "output_blake3="+hex.EncodeToString(sum[:])) {
		t.Errorf("expected the output digest in the logs, got %q", logs)
	}
	if !strings.Contains(logs, "run_id=") {
		t.Errorf("expected a run id in the logs, got %q", logs)
	}
}

func TestConvertForwardReference(t *testing.T) {
	in := writeCorpus(t, `#BOS 1
Er er PPER nsm3 ON 0 %% R=coreferential.2:500
#EOS 1
`)
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.conll")

	_, _, err := run(t, "convert", "-i", in, "-o", outPath)
	if !errors.Is(err, storage.ErrUnresolved) {
		t.Fatalf("expected ErrUnresolved, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected no output file, got %d entries", len(entries))
	}
}

func TestConvertSQLiteStore(t *testing.T) {
	in := writeCorpus(t, corpus)
	db := filepath.Join(t.TempDir(), "spans.db")

	// twice, the second run starts from an empty store
	for i := 0; i < 2; i++ {
		_, logs, err := run(t, "--log-level", "debug", "convert", "-i", in, "-s", db)
		if err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
		if !strings.Contains(logs, "backend=sqlite") {
			t.Errorf("run %d: expected the sqlite backend in the logs, got %q", i, logs)
		}
	}

	var p Pool
	defer p.Close()
	st, err := OpenSpanRepository(&p, db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sp, err := st.Resolve(0, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sp.String() != "[0,1]" {
		t.Errorf("expected [0,1], got %s", sp)
	}
}

func TestConvertJSONLinesStore(t *testing.T) {
	in := writeCorpus(t, corpus)
	path := filepath.Join(t.TempDir(), "spans.jsonl")

	if _, _, err := run(t, "convert", "-i", in, "-s", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var p Pool
	st, err := OpenSpanRepository(&p, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	words, err := st.Words(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(words, " ") != "Er schläft" {
		t.Errorf("unexpected words %v", words)
	}
}

func TestConvertProgress(t *testing.T) {
	in := writeCorpus(t, corpus)
	outPath := filepath.Join(t.TempDir(), "out.conll")

	if _, _, err := run(t, "convert", "-p", "-i", in, "-o", outPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("expected output file, got %v", err)
	}
}

func TestConvertArgErrors(t *testing.T) {
	in := writeCorpus(t, corpus)
	tests := [][]string{
		{"convert", "-f", "xml", "-i", in},
		{"convert", in, in},
		{"convert", "a", "b", "c"},
		{"--log-level", "loud", "convert", "-i", in},
		{"convert", "-i", filepath.Join(t.TempDir(), "missing.export")},
	}
	for _, args := range tests {
		if _, _, err := run(t, args...); err == nil {
			t.Errorf("%v: expected error, got nil", args)
		}
	}
}

func TestStat(t *testing.T) {
	in := writeCorpus(t, corpus)

	out, _, err := run(t, "stat", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Num sentences 2", "num tokens 5", "Num directives 1", "num annotated tokens 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output %q", want, out)
		}
	}
}

func TestInspectArgs(t *testing.T) {
	if _, _, err := run(t, "inspect"); err == nil {
		t.Errorf("expected error without input and store")
	}
	if _, _, err := run(t, "inspect", "-s", filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Errorf("expected error for missing store")
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "negracoref version dev (commit: none)\n" {
		t.Errorf("unexpected version %q", out)
	}
}

func TestFprintErr(t *testing.T) {
	var buf bytes.Buffer
	fprintErr(&buf, errors.New("boom"))
	if buf.String() != "negracoref: boom\n" {
		t.Errorf("unexpected error line %q", buf.String())
	}
}

func TestBash(t *testing.T) {
	out, _, err := run(t, "bash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "complete -o default -F _negracoref_autocomplete negracoref") {
		t.Errorf("unexpected completion script %q", out)
	}
}
