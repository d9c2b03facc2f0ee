// Package tracing turns scheduler hooks into tasks that describe where each
// process spent its ticks.
package tracing

import (
	"fmt"
	"reflect"

	"github.com/sarchlab/rrsched/hooking"
	"github.com/sarchlab/rrsched/process"
	"github.com/sarchlab/rrsched/scheduling"
)

// A Tracer can collect task traces
type Tracer interface {
	StartTask(task Task)
	EndTask(task Task)
}

// CollectTrace let the tracer to collect trace from a scheduler. Attaching
// the same tracer twice panics.
func CollectTrace(domain hooking.Hookable, tracer Tracer) {
	for _, hook := range domain.Hooks() {
		hook, ok := hook.(*traceHook)
		if ok && hook.t == tracer {
			panic(fmt.Sprintf("domain already has tracer %s",
				reflect.TypeOf(tracer)))
		}
	}

	h := &traceHook{
		t:        tracer,
		inflight: make(map[int]Task),
	}
	domain.AcceptHook(h)
}

// A traceHook converts process lifecycle hooks into tasks. Each process has at
// most one inflight task at a time.
type traceHook struct {
	t        Tracer
	inflight map[int]Task
}

// Func calls the tracer interfaces when the hook is triggered
func (h *traceHook) Func(ctx hooking.HookCtx) {
	p, ok := ctx.Item.(process.Process)
	if !ok {
		return
	}

	tick := ctx.Detail.(int)

	switch ctx.Pos {
	case scheduling.HookPosProcessAdmitted:
		h.start(p, KindWait, tick)
	case scheduling.HookPosProcessDispatched:
		h.end(p, tick)
		h.start(p, KindBurst, tick)
	case scheduling.HookPosProcessPreempted:
		h.end(p, tick+1)
		h.start(p, KindWait, tick+1)
	case scheduling.HookPosProcessFinished:
		h.end(p, tick+1)
	}
}

func (h *traceHook) start(p process.Process, kind string, tick int) {
	where := "cpu"
	if kind == KindWait {
		where = "ready_queue"
	}

	task := Task{
		ID:        fmt.Sprintf("%s-%s@%d", p.Name(), kind, tick),
		Kind:      kind,
		What:      p.Name(),
		Where:     where,
		PID:       p.ID,
		StartTime: tick,
	}

	h.inflight[p.ID] = task
	h.t.StartTask(task)
}

func (h *traceHook) end(p process.Process, tick int) {
	task, ok := h.inflight[p.ID]
	if !ok {
		return
	}

	delete(h.inflight, p.ID)

	task.EndTime = tick
	h.t.EndTask(task)
}
