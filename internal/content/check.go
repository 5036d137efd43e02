package content

import (
	"strconv"
	"strings"
)

// Check reports whether submitted answers q.
//
// Multiple-choice kinds accept the exact option text or its 1-based index.
// TYPE_HEAR is case-insensitive. WORD_ORDER must reproduce the sentence word
// for word; spacing between words is ignored. PHONETIC_PRACTICE is
// self-assessed and accepts PhoneticCompleted.
func Check(q Question, submitted string) bool {
	submitted = strings.TrimSpace(submitted)
	if submitted == "" {
		return false
	}

	switch q.Kind {
	case KindMeaningMC, KindListeningMC, KindSentenceListening:
		if idx, err := strconv.Atoi(submitted); err == nil {
			return idx >= 1 && idx <= len(q.Options) && q.Options[idx-1] == q.Answer
		}
		return submitted == q.Answer

	case KindTypeHear:
		return strings.EqualFold(submitted, strings.TrimSpace(q.Answer))

	case KindWordOrder:
		return strings.Join(strings.Fields(submitted), " ") == q.Answer

	case KindPhoneticPractice:
		return strings.EqualFold(submitted, PhoneticCompleted)

	default:
		return false
	}
}
