package validator

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/vvka-141/ddexcheck/pkg/ddex"
)

// Pipeline states.
const (
	StateStart         = "start"
	StateParse         = "parse"
	StateParseFailed   = "parse_failed"
	StateSchemaCheck   = "schema_check"
	StateCritical      = "critical"
	StateBusinessRules = "business_rules"
	StateAssemble      = "assemble"
	StateDone          = "done"
)

// Pipeline events.
const (
	eventParse       = "parse"
	eventParseFailed = "parse_failed"
	eventCheckSchema = "check_schema"
	eventCritical    = "critical"
	eventRunRules    = "run_rules"
	eventAssemble    = "assemble"
	eventFinish      = "finish"
)

var pipelineEvents = fsm.Events{
	{Name: eventParse, Src: []string{StateStart}, Dst: StateParse},
	{Name: eventParseFailed, Src: []string{StateParse}, Dst: StateParseFailed},
	{Name: eventCheckSchema, Src: []string{StateParse}, Dst: StateSchemaCheck},
	{Name: eventCritical, Src: []string{StateSchemaCheck}, Dst: StateCritical},
	{Name: eventRunRules, Src: []string{StateSchemaCheck}, Dst: StateBusinessRules},
	{Name: eventAssemble, Src: []string{StateSchemaCheck, StateCritical, StateBusinessRules}, Dst: StateAssemble},
	{Name: eventFinish, Src: []string{StateAssemble}, Dst: StateDone},
}

// pipeline tracks one validation call.
type pipeline struct {
	machine *fsm.FSM
	visited []string
}

func newPipeline(logger ddex.Logger) *pipeline {
	p := &pipeline{visited: []string{StateStart}}
	p.machine = fsm.NewFSM(StateStart, pipelineEvents, fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			p.visited = append(p.visited, e.Dst)
			logger.Verbose("validation: %s -> %s", e.Src, e.Dst)
		},
	})
	return p
}

// fire moves the pipeline along. An invalid transition is a programming
// error.
func (p *pipeline) fire(event string) {
	if err := p.machine.Event(context.Background(), event); err != nil {
		panic(fmt.Sprintf("validation pipeline: %v", err))
	}
}

func (p *pipeline) current() string { return p.machine.Current() }
