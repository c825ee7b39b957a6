package domain

type TriggerKind string

const (
	TriggerEnter TriggerKind = "enter"
	TriggerMic   TriggerKind = "mic"
)

// Trigger is one user interaction coming from an input surface.
type Trigger struct {
	Kind TriggerKind
	Text string
}
