package application

import "voxa/internal/domain"

type Speaker struct {
	synth Synthesizer
}

// NewSpeaker accepts a nil synthesizer; speaking is then a no-op.
func NewSpeaker(synth Synthesizer) *Speaker {
	return &Speaker{synth: synth}
}

func (s *Speaker) Speak(text string) {
	if s == nil || s.synth == nil {
		return
	}
	s.synth.Enqueue(domain.NewUtterance(text))
}
