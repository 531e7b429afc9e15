package pipeline

import (
	"github.com/nanov/jsasta/internal/analyzer"
	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/token"
	"github.com/nanov/jsasta/internal/typesystem"
)

func loadError(entryPath string, err error) diag.Diagnostic {
	return diag.Diagnostic{
		Code: diag.ImportMissingFile, Severity: diag.Error,
		Pos:     token.Position{Filename: entryPath, Line: 1, Column: 1},
		Message: err.Error(),
	}
}

// LoadStage loads the entry module and, transitively, every module it
// imports, via the registry's DFS (§4.3).
type LoadStage struct{}

func (LoadStage) Process(ctx *PipelineContext) *PipelineContext {
	if _, err := ctx.Registry.Load(ctx.EntryPath); err != nil {
		ctx.Sink.Add(loadError(ctx.EntryPath, err))
	}
	return ctx
}

// AnalyzeStage runs the type inference driver over every loaded module, in
// the registry's load order, sharing one trait registry across all of them
// so a trait declared in one module resolves correctly for an impl written
// in another.
type AnalyzeStage struct{}

func (AnalyzeStage) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Traits == nil {
		ctx.Traits = typesystem.NewTraitRegistry()
		ctx.Traits.SeedBuiltinImpls(ctx.Registry.Universe)
	}
	for _, mod := range ctx.Registry.Modules() {
		analyzer.Analyze(mod, ctx.Registry, ctx.Traits, ctx.Sink)
	}
	return ctx
}

// Standard returns the pipeline every `jsastac build`/`jsastac check`
// invocation runs: load the module graph, then analyze it.
func Standard() *Pipeline {
	return New(LoadStage{}, AnalyzeStage{})
}
