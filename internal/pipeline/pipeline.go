// Package pipeline sequences one compile's stages: load the module graph,
// then analyze every module in load order. Each stage is free to keep
// running after a prior one records errors (PipelineContext.Sink never
// aborts mid-phase) so a single invocation still surfaces every diagnostic
// it can, exactly as the distilled spec's §7 propagation policy requires.
package pipeline

import (
	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/modules"
	"github.com/nanov/jsasta/internal/typesystem"
)

// PipelineContext threads the state one compile run accumulates from stage
// to stage.
type PipelineContext struct {
	EntryPath string
	Registry  *modules.Registry
	Sink      *diag.Sink
	Traits    *typesystem.TraitRegistry
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors to collect diagnostics from all stages
		// (e.g. LSP needs both parse and semantic errors).
	}
	return ctx
}
