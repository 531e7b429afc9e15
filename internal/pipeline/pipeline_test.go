package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/modules"
)

type recordingStage struct {
	name string
	log  *[]string
}

func (r recordingStage) Process(ctx *PipelineContext) *PipelineContext {
	*r.log = append(*r.log, r.name)
	return ctx
}

func TestPipeline_Run_ExecutesStagesInOrder(t *testing.T) {
	var log []string
	p := New(recordingStage{"first", &log}, recordingStage{"second", &log})
	ctx := &PipelineContext{Sink: diag.NewSink()}
	p.Run(ctx)
	if len(log) != 2 || log[0] != "first" || log[1] != "second" {
		t.Fatalf("stage execution order = %v, want [first second]", log)
	}
}

func TestStandard_MissingEntryFile_RecordsLoadError(t *testing.T) {
	sink := diag.NewSink()
	reg := modules.NewRegistry(sink)
	ctx := &PipelineContext{EntryPath: filepath.Join(t.TempDir(), "missing.jsa"), Registry: reg, Sink: sink}

	Standard().Run(ctx)

	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic for a missing entry file")
	}
}

func TestStandard_ValidEntry_AnalyzesEveryLoadedModule(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "main.jsa")
	if err := os.WriteFile(entry, []byte(`function f(): int { return 1; }`), 0o644); err != nil {
		t.Fatalf("writing entry: %v", err)
	}

	sink := diag.NewSink()
	reg := modules.NewRegistry(sink)
	ctx := &PipelineContext{EntryPath: entry, Registry: reg, Sink: sink}

	out := Standard().Run(ctx)

	if out.Traits == nil {
		t.Fatalf("expected AnalyzeStage to populate a shared trait registry")
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.All())
	}
}
