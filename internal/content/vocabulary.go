package content

type word struct {
	en       string
	ja       string
	phonetic string
}

type sentence struct {
	en string
	ja string
}

// vocabulary and sentences are keyed by stage. Stages without their own
// entries reuse stage 1.
var vocabulary = map[int][]word{
	1: {
		{"school", "学校", "skuːl"},
		{"student", "生徒", "ˈstuːdənt"},
		{"teacher", "先生", "ˈtiːtʃər"},
		{"book", "本", "bʊk"},
		{"pen", "ペン", "pen"},
	},
	2: {
		{"family", "家族", "ˈfæməli"},
		{"mother", "母", "ˈmʌðər"},
		{"father", "父", "ˈfɑːðər"},
		{"sister", "姉妹", "ˈsɪstər"},
		{"brother", "兄弟", "ˈbrʌðər"},
	},
	3: {
		{"food", "食べ物", "fuːd"},
		{"apple", "りんご", "ˈæpəl"},
		{"bread", "パン", "bred"},
		{"water", "水", "ˈwɔːtər"},
		{"coffee", "コーヒー", "ˈkɔːfi"},
	},
	4: {
		{"house", "家", "haʊs"},
		{"room", "部屋", "ruːm"},
		{"kitchen", "台所", "ˈkɪtʃən"},
		{"bedroom", "寝室", "ˈbedruːm"},
		{"bathroom", "浴室", "ˈbæθruːm"},
	},
	5: {
		{"weather", "天気", "ˈweðər"},
		{"sunny", "晴れ", "ˈsʌni"},
		{"rainy", "雨", "ˈreɪni"},
		{"cloudy", "曇り", "ˈklaʊdi"},
		{"snowy", "雪", "ˈsnoʊi"},
	},
}

var sentences = map[int][]sentence{
	1: {
		{"I go to school every day", "私は毎日学校に行きます"},
		{"The student is reading a book", "生徒が本を読んでいます"},
		{"My teacher is very kind", "私の先生はとても親切です"},
		{"I like to study English", "私は英語を勉強するのが好きです"},
		{"Please give me a pen", "ペンをください"},
	},
	2: {
		{"I love my family", "私は家族を愛しています"},
		{"My mother cooks dinner", "母が夕食を作ります"},
		{"My father works hard", "父は一生懸命働きます"},
		{"I have one sister", "私には姉が一人います"},
		{"My brother plays soccer", "兄はサッカーをします"},
	},
	3: {
		{"I like to eat apples", "私はりんごを食べるのが好きです"},
		{"Bread is delicious", "パンは美味しいです"},
		{"I drink water every day", "私は毎日水を飲みます"},
		{"Coffee smells good", "コーヒーはいい匂いがします"},
		{"Food is important for health", "食べ物は健康に大切です"},
	},
	4: {
		{"My house is small", "私の家は小さいです"},
		{"This room is comfortable", "この部屋は快適です"},
		{"I cook in the kitchen", "私は台所で料理をします"},
		{"I sleep in my bedroom", "私は寝室で寝ます"},
		{"The bathroom is clean", "浴室はきれいです"},
	},
	5: {
		{"The weather is nice today", "今日は天気がいいです"},
		{"It is sunny outside", "外は晴れています"},
		{"I like rainy days", "私は雨の日が好きです"},
		{"The sky is cloudy", "空は曇っています"},
		{"It is snowy in winter", "冬は雪が降ります"},
	},
}

const (
	instructionListening = "音声を聞いて、正しい意味を選んでください"
	instructionWordOrder = "並べ替えて正しい英文にしてください:"
	instructionTypeHear  = "音声を聞いて、聞こえた単語をタイプしてください"
	instructionSentence  = "文章を聞いて、正しい意味を選んでください"
	instructionPhonetic  = "発音記号を参考に、正しく発音してみましょう"
)

func stageWords(stage int) []word {
	if w, ok := vocabulary[stage]; ok {
		return w
	}
	return vocabulary[1]
}

func stageSentences(stage int) []sentence {
	if s, ok := sentences[stage]; ok {
		return s
	}
	return sentences[1]
}
