// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package spawn

// Slots of the per-call handle table. The child keeps stdinR, stdoutW and
// stderrW; the parent keeps the rest.
const (
	slotStdinR = iota
	slotStdinW
	slotStdoutR
	slotStdoutW
	slotStderrR
	slotStderrW
	slotProcess
	slotThread
	slotCount
)

var slotNames = [slotCount]string{
	"stdin read end",
	"stdin write end",
	"stdout read end",
	"stdout write end",
	"stderr read end",
	"stderr write end",
	"process handle",
	"thread handle",
}

var pipeNames = [3]string{"stdin", "stdout", "stderr"}

// pipeSlots lists the (read, write) slot pairs in creation order.
var pipeSlots = [3][2]int{
	{slotStdinR, slotStdinW},
	{slotStdoutR, slotStdoutW},
	{slotStderrR, slotStderrW},
}

// parentSlots are the ends that must not reach the child.
var parentSlots = [3]int{slotStdinW, slotStdoutR, slotStderrR}

// handleTable owns every OS handle acquired during one spawn. A slot is
// either open exactly once or InvalidHandle; release closes a slot at most
// once and teardown visits every slot, so any exit path can call it.
type handleTable struct {
	sys   sysCalls
	log   func(format string, v ...any)
	slots [slotCount]Handle
}

func newHandleTable(sys sysCalls, logf func(format string, v ...any)) *handleTable {
	t := &handleTable{sys: sys, log: logf}
	for i := range t.slots {
		t.slots[i] = InvalidHandle
	}
	return t
}

// openPipes creates the stdin, stdout and stderr pipes. Pipes created before
// a failure stay in the table for teardown.
func (t *handleTable) openPipes() error {
	for i, p := range pipeSlots {
		r, w, err := t.sys.pipe()
		if err != nil {
			return newError(PipeCreationFailure, "pipe "+pipeNames[i], err)
		}
		t.slots[p[0]], t.slots[p[1]] = r, w
	}
	return nil
}

// configure clears the inheritance flag on the parent's ends.
func (t *handleTable) configure() error {
	for _, s := range parentSlots {
		if err := t.sys.setInheritable(t.slots[s], false); err != nil {
			return newError(HandleConfigurationFailure, "configure "+slotNames[s], err)
		}
	}
	return nil
}

// childStdio returns the handles the child's stdin, stdout and stderr bind to.
func (t *handleTable) childStdio() [3]Handle {
	return [3]Handle{t.slots[slotStdinR], t.slots[slotStdoutW], t.slots[slotStderrW]}
}

// adopt records the process and thread handles of a started child.
func (t *handleTable) adopt(p Process) {
	t.slots[slotProcess] = p.Handle
	t.slots[slotThread] = p.Thread
}

// releaseChildEnds closes the parent's copies of the ends the child now
// holds. Until they are gone the stdout and stderr pipes never report EOF.
func (t *handleTable) releaseChildEnds() {
	t.release(slotStdinR)
	t.release(slotStdoutW)
	t.release(slotStderrW)
}

func (t *handleTable) get(slot int) Handle { return t.slots[slot] }

func (t *handleTable) release(slot int) {
	h := t.slots[slot]
	if h == InvalidHandle {
		return
	}
	t.slots[slot] = InvalidHandle
	if err := t.sys.closeHandle(h); err != nil && t.log != nil {
		t.log("close %s: %v", slotNames[slot], err)
	}
}

// teardown releases every slot still open.
func (t *handleTable) teardown() {
	for slot := range t.slots {
		t.release(slot)
	}
}
