package feedback

import "sync"

// PendingAnswer is a one-shot handoff between a backend worker and the orchestrator.
// The text is written once, before Done is closed, and never changes afterwards.
type PendingAnswer struct {
	once sync.Once
	done chan struct{}
	text string
}

func NewPendingAnswer() *PendingAnswer {
	return &PendingAnswer{done: make(chan struct{})}
}

// Complete stores text and signals completion. Only the first call has any effect;
// it returns false for every later call.
func (p *PendingAnswer) Complete(text string) bool {
	stored := false
	p.once.Do(func() {
		p.text = text
		stored = true
		close(p.done)
	})
	return stored
}

// Done is closed once Complete has stored a value.
func (p *PendingAnswer) Done() <-chan struct{} {
	return p.done
}

func (p *PendingAnswer) Completed() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Text returns the stored answer and whether it has been completed.
// Reading before completion yields ("", false).
func (p *PendingAnswer) Text() (string, bool) {
	select {
	case <-p.done:
		return p.text, true
	default:
		return "", false
	}
}
