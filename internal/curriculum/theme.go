package curriculum

// Theme is the vocabulary topic of a stage.
type Theme struct {
	Name  string // English topic name
	Label string // topic as shown to the learner
	Icon  string
}

var themes = map[int]Theme{
	1: {Name: "school", Label: "学校", Icon: "📘"},
	2: {Name: "family", Label: "家族", Icon: "👪"},
	3: {Name: "food", Label: "食べ物", Icon: "🍎"},
	4: {Name: "home", Label: "家", Icon: "🏠"},
	5: {Name: "weather", Label: "天気", Icon: "☁️"},
}

// ThemeOf returns the topic of a stage. Stages without their own topic reuse
// the first one.
func ThemeOf(stage int) Theme {
	if t, ok := themes[stage]; ok {
		return t
	}
	return themes[1]
}
