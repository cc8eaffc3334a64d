package message

import (
	"github.com/quellbrowser/quell/internal/runloop"
	"github.com/rs/zerolog"
)

// Question is a yes/no prompt.
type Question struct {
	Text    string
	Default bool
}

// Presenter shows a question to the user. Answer must eventually be called
// on the prompter (typically from a key handler running on the loop).
type Presenter func(Question)

// Prompter asks modal questions by running a nested iteration of the run
// loop until an answer arrives. Shutdown logic checks Active to know it must
// defer teardown to the outer loop iteration.
type Prompter struct {
	loop      *runloop.Loop
	presenter Presenter
	log       zerolog.Logger

	active   bool
	answered bool
	answer   bool
}

// NewPrompter creates a prompter bound to the loop.
func NewPrompter(loop *runloop.Loop, log zerolog.Logger) *Prompter {
	return &Prompter{
		loop: loop,
		log:  log.With().Str("component", "prompter").Logger(),
	}
}

// SetPresenter attaches the widget that renders questions.
func (p *Prompter) SetPresenter(pr Presenter) {
	p.presenter = pr
}

// Ask presents a question and blocks in a nested loop iteration until
// Answer or Abort resolves it. Without a presenter the default is returned
// immediately. Must be called from the loop goroutine.
func (p *Prompter) Ask(q Question) bool {
	if p.presenter == nil {
		p.log.Debug().Str("text", q.Text).Msg("no presenter attached, answering with default")
		return q.Default
	}
	if p.active {
		p.log.Warn().Str("text", q.Text).Msg("nested question rejected, answering with default")
		return q.Default
	}

	p.active = true
	p.answered = false
	p.answer = q.Default

	p.presenter(q)
	p.loop.RunNested(func() bool { return p.answered })

	p.active = false
	return p.answer
}

// Answer resolves the active question.
func (p *Prompter) Answer(v bool) {
	if !p.active {
		return
	}
	p.answer = v
	p.answered = true
}

// Abort cancels an active question with its default answer and reports
// whether one was active. Called by shutdown stage 1.
func (p *Prompter) Abort() bool {
	if !p.active {
		return false
	}
	p.answered = true
	return true
}

// Active reports whether a question is currently being asked.
func (p *Prompter) Active() bool {
	return p.active
}
