package content

import "github.com/abhisek/owllearn/internal/progress"

// Kind is the question type. The values match the identifiers used by the
// browser client's lesson data.
type Kind string

const (
	KindMeaningMC         Kind = "MEANING_MC"
	KindListeningMC       Kind = "LISTENING_MC"
	KindWordOrder         Kind = "WORD_ORDER"
	KindTypeHear          Kind = "TYPE_HEAR"
	KindSentenceListening Kind = "SENTENCE_LISTENING"
	KindPhoneticPractice  Kind = "PHONETIC_PRACTICE"
)

// PhoneticCompleted is the answer a learner gives to a pronunciation drill
// once they have practised it.
const PhoneticCompleted = "completed"

// AllKinds returns the kinds in lesson order.
func AllKinds() []Kind {
	return []Kind{
		KindMeaningMC,
		KindListeningMC,
		KindWordOrder,
		KindTypeHear,
		KindSentenceListening,
		KindPhoneticPractice,
	}
}

// MultipleChoice reports whether the learner picks from Options.
func (k Kind) MultipleChoice() bool {
	switch k {
	case KindMeaningMC, KindListeningMC, KindSentenceListening:
		return true
	default:
		return false
	}
}

// Question is one step of a lesson.
type Question struct {
	Kind Kind

	// Prompt is the text shown to the learner, if any.
	Prompt string

	// Audio is the text a speech collaborator would read aloud.
	Audio string

	Instruction string

	// Options holds the choices for multiple-choice kinds.
	Options []string

	// Tiles holds the shuffled words of a WORD_ORDER question.
	Tiles []string

	// Answer is the expected response.
	Answer string

	Translation string
	Phonetic    string
	Hint        string
}

// Provider supplies the questions of a lesson in a fixed order.
type Provider interface {
	Questions(id progress.LessonID) ([]Question, error)
}
