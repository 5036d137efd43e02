package content

import (
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/abhisek/owllearn/internal/progress"
)

const distractorCount = 3

// Static builds lessons from the built-in vocabulary. Option order and
// distractors come from the injected random source, so a fixed seed yields
// identical lessons.
type Static struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewStatic returns a provider drawing from rng.
func NewStatic(rng *rand.Rand) *Static {
	return &Static{rng: rng}
}

// NewSeeded returns a provider with a deterministic PCG source.
func NewSeeded(seed uint64) *Static {
	return NewStatic(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Questions returns the six questions of lesson id.
func (p *Static) Questions(id progress.LessonID) ([]Question, error) {
	if _, err := progress.NewLessonID(id.Stage, id.SubStage); err != nil {
		return nil, err
	}

	words := stageWords(id.Stage)
	sents := stageSentences(id.Stage)

	w1 := words[(id.SubStage-1)%len(words)]
	w2 := words[id.SubStage%len(words)]
	sent := sents[(id.SubStage-1)%len(sents)]

	p.mu.Lock()
	defer p.mu.Unlock()

	return []Question{
		{
			Kind:    KindMeaningMC,
			Prompt:  w1.en,
			Audio:   w1.en,
			Options: p.options(w1.ja, p.wordDistractors(w1, w2)),
			Answer:  w1.ja,
		},
		{
			Kind:        KindListeningMC,
			Audio:       w2.en,
			Instruction: instructionListening,
			Options:     p.options(w2.ja, p.wordDistractors(w1, w2)),
			Answer:      w2.ja,
		},
		{
			Kind:        KindWordOrder,
			Prompt:      instructionWordOrder,
			Tiles:       p.shuffled(strings.Fields(sent.en)),
			Answer:      sent.en,
			Translation: sent.ja,
		},
		{
			Kind:        KindTypeHear,
			Audio:       w1.en,
			Instruction: instructionTypeHear,
			Answer:      strings.ToLower(w1.en),
			Hint:        "ヒント: " + w1.ja,
		},
		{
			Kind:        KindSentenceListening,
			Audio:       sent.en,
			Instruction: instructionSentence,
			Options:     p.options(sent.ja, p.sentenceDistractors(sents, sent)),
			Answer:      sent.ja,
		},
		{
			Kind:        KindPhoneticPractice,
			Prompt:      w1.en,
			Audio:       w1.en,
			Instruction: instructionPhonetic,
			Phonetic:    w1.phonetic,
			Translation: w1.ja,
			Answer:      PhoneticCompleted,
		},
	}, nil
}

// wordDistractors draws translations from the whole vocabulary, excluding
// the lesson's own words.
func (p *Static) wordDistractors(exclude ...word) []string {
	var pool []string
	for _, stage := range sortedStages() {
		for _, w := range vocabulary[stage] {
			if !slices.ContainsFunc(exclude, func(x word) bool { return x.ja == w.ja }) {
				pool = append(pool, w.ja)
			}
		}
	}
	return p.pick(pool, distractorCount)
}

func (p *Static) sentenceDistractors(pool []sentence, answer sentence) []string {
	var out []string
	for _, s := range pool {
		if s.ja != answer.ja {
			out = append(out, s.ja)
		}
	}
	return p.pick(out, distractorCount)
}

func (p *Static) options(answer string, distractors []string) []string {
	return p.shuffled(append([]string{answer}, distractors...))
}

func (p *Static) pick(pool []string, n int) []string {
	pool = p.shuffled(pool)
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}

func (p *Static) shuffled(in []string) []string {
	out := slices.Clone(in)
	p.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func sortedStages() []int {
	stages := make([]int, 0, len(vocabulary))
	for s := range vocabulary {
		stages = append(stages, s)
	}
	slices.Sort(stages)
	return stages
}
