package domain

const (
	DefaultLanguage = "en-US"
	DefaultRate     = 1.0
	DefaultPitch    = 1.0
)

type Utterance struct {
	Text  string
	Lang  string
	Rate  float64
	Pitch float64
}

func NewUtterance(text string) Utterance {
	return Utterance{
		Text:  text,
		Lang:  DefaultLanguage,
		Rate:  DefaultRate,
		Pitch: DefaultPitch,
	}
}

type RecognitionConfig struct {
	Continuous     bool
	InterimResults bool
	Lang           string
}

// DefaultRecognitionConfig asks for exactly one final transcript per activation.
func DefaultRecognitionConfig() RecognitionConfig {
	return RecognitionConfig{
		Continuous:     false,
		InterimResults: false,
		Lang:           DefaultLanguage,
	}
}

type RecognitionEventKind string

const (
	RecognitionStart  RecognitionEventKind = "start"
	RecognitionResult RecognitionEventKind = "result"
	RecognitionError  RecognitionEventKind = "error"
	RecognitionEnd    RecognitionEventKind = "end"
)

type Alternative struct {
	Transcript string
	Confidence float64
}

// RecognitionSegment holds alternatives ordered by confidence, highest first.
type RecognitionSegment []Alternative

type RecognitionEvent struct {
	Kind    RecognitionEventKind
	Results []RecognitionSegment
	Err     error
}

// Transcript returns the first alternative of the first segment.
func (e RecognitionEvent) Transcript() (string, bool) {
	if len(e.Results) == 0 || len(e.Results[0]) == 0 {
		return "", false
	}
	return e.Results[0][0].Transcript, true
}
