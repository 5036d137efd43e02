package curriculum

// Band groups stages into difficulty levels shown on the profile and map.
type Band string

const (
	BandBeginner     Band = "beginner"
	BandIntermediate Band = "intermediate"
	BandAdvanced     Band = "advanced"
)

type bandRange struct {
	band  Band
	first int
	last  int
}

var bands = []bandRange{
	{BandBeginner, 1, 4},
	{BandIntermediate, 5, 12},
	{BandAdvanced, 13, 20},
}

// AllBands returns the bands from easiest to hardest.
func AllBands() []Band {
	return []Band{BandBeginner, BandIntermediate, BandAdvanced}
}

// DisplayName returns a human-readable label for the band.
func (b Band) DisplayName() string {
	switch b {
	case BandBeginner:
		return "Beginner"
	case BandIntermediate:
		return "Intermediate"
	case BandAdvanced:
		return "Advanced"
	default:
		return string(b)
	}
}

// Stages returns the first and last stage of the band.
func (b Band) Stages() (first, last int) {
	for _, r := range bands {
		if r.band == b {
			return r.first, r.last
		}
	}
	return 0, 0
}

// BandOf returns the band a stage belongs to. Stages past the last band
// count as advanced.
func BandOf(stage int) Band {
	for _, r := range bands {
		if stage <= r.last {
			return r.band
		}
	}
	return BandAdvanced
}

// BandProgress returns how many stages of band b lie behind currentStage,
// and the size of the band.
func BandProgress(b Band, currentStage int) (done, total int) {
	first, last := b.Stages()
	total = last - first + 1
	done = currentStage - first
	if done < 0 {
		done = 0
	}
	if done > total {
		done = total
	}
	return done, total
}
