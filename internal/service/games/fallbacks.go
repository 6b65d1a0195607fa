package games

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/zhouzirui/gamehub/backend/internal/model/game"
)

// Deterministic content served whenever generation is unavailable.

var (
	javaBank = []game.QuizQuestion{
		{Prompt: "Which GC algorithm is the default in modern OpenJDK HotSpot (server) builds?", Options: []string{"Serial GC", "G1 GC", "Shenandoah", "ZGC"}, AnswerIndex: 1, Explanation: "G1 has been the default collector since JDK 9."},
		{Prompt: "What does the 'volatile' keyword guarantee?", Options: []string{"Atomicity of compound operations", "Visibility and ordering of writes", "Mutual exclusion", "Faster access"}, AnswerIndex: 1, Explanation: "volatile gives visibility and happens-before ordering, not atomic read-modify-write."},
		{Prompt: "Which interface underpins the lazy traversal of streams?", Options: []string{"Supplier", "Iterable", "Spliterator", "Collector"}, AnswerIndex: 2, Explanation: "Streams pull elements through a Spliterator."},
		{Prompt: "What is the major benefit of sealed classes?", Options: []string{"Runtime speed", "Exhaustive type hierarchies", "Reflection power", "Smaller bytecode"}, AnswerIndex: 1, Explanation: "Sealed hierarchies let the compiler check exhaustiveness."},
		{Prompt: "What is the object header size on 64-bit HotSpot with compressed class pointers?", Options: []string{"8 bytes", "12 bytes", "16 bytes", "24 bytes"}, AnswerIndex: 1, Explanation: "An 8-byte mark word plus a 4-byte compressed class pointer."},
	}

	spaceBank = []game.QuizQuestion{
		{Prompt: "Which star is the closest to the Sun?", Options: []string{"Barnard's Star", "Proxima Centauri", "Sirius A", "Tau Ceti"}, AnswerIndex: 1, Explanation: "Proxima Centauri is about 4.24 light-years away."},
		{Prompt: "What is the main constituent of Jupiter's atmosphere?", Options: []string{"Oxygen", "Methane", "Hydrogen", "Ammonia"}, AnswerIndex: 2, Explanation: "Jupiter's atmosphere is roughly 90% hydrogen."},
		{Prompt: "Which observatory found the first exoplanet around a Sun-like star?", Options: []string{"Hubble", "Kepler", "Haute-Provence (51 Pegasi b)", "Spitzer"}, AnswerIndex: 2, Explanation: "51 Pegasi b was announced in 1995 from Haute-Provence."},
		{Prompt: "What is the approximate age of the universe?", Options: []string{"4.5 billion years", "7.5 billion years", "10.5 billion years", "13.8 billion years"}, AnswerIndex: 3, Explanation: "Planck data puts it at about 13.8 billion years."},
		{Prompt: "Which object is a dwarf planet?", Options: []string{"Ganymede", "Vesta", "Ceres", "Enceladus"}, AnswerIndex: 2, Explanation: "Ceres is the only dwarf planet in the asteroid belt."},
	}

	generalBank = []game.QuizQuestion{
		{Prompt: "What is the largest internal organ by mass?", Options: []string{"Liver", "Lungs", "Brain", "Pancreas"}, AnswerIndex: 0, Explanation: "An adult liver weighs about 1.5 kg."},
		{Prompt: "Which vitamin is fat-soluble?", Options: []string{"Vitamin C", "Vitamin B1", "Vitamin K", "Vitamin B12"}, AnswerIndex: 2, Explanation: "Vitamins A, D, E and K are fat-soluble."},
		{Prompt: "Which sporting term belongs to cricket?", Options: []string{"Love", "Bogey", "Yorker", "Ruck"}, AnswerIndex: 2, Explanation: "A yorker is a delivery pitched at the batter's feet."},
		{Prompt: "The speed of light in vacuum is about:", Options: []string{"3x10^6 m/s", "3x10^8 m/s", "3x10^10 m/s", "3x10^12 m/s"}, AnswerIndex: 1, Explanation: "c is 299,792,458 m/s."},
		{Prompt: "Which language keeps generic type arguments at runtime (reified generics)?", Options: []string{"Java", "C#", "Go", "Python"}, AnswerIndex: 1, Explanation: "Java erases type arguments; the .NET runtime keeps them."},
	}
)

// quizBank picks the bank that matches topic.
func quizBank(topic string) []game.QuizQuestion {
	t := strings.ToLower(topic)
	switch {
	case strings.Contains(t, "java"):
		return javaBank
	case strings.Contains(t, "space"), strings.Contains(t, "astronom"):
		return spaceBank
	default:
		return generalBank
	}
}

// fallbackQuestion returns bank question i with its options shuffled.
func fallbackQuestion(topic string, i int, shuffle func(n int, swap func(i, j int))) game.QuizQuestion {
	bank := quizBank(topic)
	src := bank[i%len(bank)]

	q := src
	q.Options = append([]string(nil), src.Options...)
	correct := src.Options[src.AnswerIndex]
	if shuffle != nil {
		shuffle(len(q.Options), func(a, b int) { q.Options[a], q.Options[b] = q.Options[b], q.Options[a] })
	}
	for idx, opt := range q.Options {
		if opt == correct {
			q.AnswerIndex = idx
			break
		}
	}
	return q
}

// character is a secret identity with its offline clues.
type character struct {
	Name  string
	Hints []string
	Facts []string
}

var characterSets = map[string][]character{
	"science": {
		{Name: "Albert Einstein", Hints: []string{"Won a Nobel Prize", "Known for relativity", "Famously wild hair"}, Facts: []string{"physicist", "german", "nobel", "relativity", "theory", "20th", "scientist", "swiss", "professor", "man", "male"}},
		{Name: "Marie Curie", Hints: []string{"Nobel laureate twice", "Worked with radioactivity", "Lived in Poland and France"}, Facts: []string{"female", "woman", "scientist", "radioactivity", "polish", "french", "nobel", "chemistry", "physics"}},
	},
	"sports": {
		{Name: "Lionel Messi", Hints: []string{"Plays football", "From Argentina", "Many Ballon d'Or awards"}, Facts: []string{"football", "soccer", "argentina", "barcelona", "psg", "forward", "goat", "man", "male", "athlete"}},
		{Name: "Serena Williams", Hints: []string{"Tennis legend", "Many Grand Slam titles", "Powerful serve"}, Facts: []string{"tennis", "grand slam", "american", "female", "woman", "goat", "athlete"}},
	},
	"movies": {
		{Name: "Hermione Granger", Hints: []string{"Uses magic", "Muggle-born", "Top of the class"}, Facts: []string{"harry potter", "hogwarts", "witch", "gryffindor", "magic", "book", "fictional", "female", "woman"}},
		{Name: "James Bond", Hints: []string{"Secret agent", "Licence to kill", "Drives an Aston Martin"}, Facts: []string{"spy", "mi6", "agent", "007", "british", "fictional", "man", "male"}},
	},
	"politics": {
		{Name: "Nelson Mandela", Hints: []string{"From South Africa", "Fought apartheid", "Became president"}, Facts: []string{"president", "south africa", "apartheid", "prison", "freedom", "nobel", "man", "male"}},
		{Name: "Narendra Modi", Hints: []string{"Indian prime minister", "From Gujarat", "Leads the BJP"}, Facts: []string{"prime minister", "india", "bjp", "gujarat", "pm", "alive", "man", "male"}},
	},
	"tech": {
		{Name: "Elon Musk", Hints: []string{"Runs SpaceX", "Runs Tesla", "Born in South Africa"}, Facts: []string{"tesla", "spacex", "twitter", "billionaire", "engineer", "ceo", "alive", "man", "male"}},
		{Name: "Ada Lovelace", Hints: []string{"Lived in the 19th century", "Wrote about the Analytical Engine", "Called the first programmer"}, Facts: []string{"programmer", "analytical engine", "byron", "algorithm", "math", "female", "woman", "british"}},
	},
	"general": {
		{Name: "Mahatma Gandhi", Hints: []string{"Led a non-violent movement", "Salt March", "Called the Father of the Nation"}, Facts: []string{"india", "independence", "non-violence", "lawyer", "salt", "man", "male", "leader"}},
		{Name: "Taylor Swift", Hints: []string{"Singer-songwriter", "Record-breaking tours", "Started in country music"}, Facts: []string{"singer", "music", "american", "pop", "country", "female", "woman", "alive"}},
	},
}

func charactersFor(topic string) []character {
	if set, ok := characterSets[topicKey(topic)]; ok {
		return set
	}
	for key, set := range characterSets {
		if strings.Contains(topicKey(topic), key) {
			return set
		}
	}
	return characterSets["general"]
}

var fallbackProducts = []struct {
	Name  string
	Price float64
}{
	{"Premium Smartphone", 69999},
	{"Mid-range Laptop", 55999},
	{"Electric Scooter", 79999},
	{"4K LED TV", 45999},
	{"Organic Face Serum", 1499},
	{"Running Shoes", 5999},
	{"Wireless Earbuds", 3499},
}

const fallbackCurrency = "INR"

var fallbackScenarios = []string{
	"Will raw material costs rise significantly?",
	"Will the brand gain major market share?",
	"Will import duties increase?",
	"Will strong new competitors appear?",
	"Will a recession hit the market?",
	"Will the product get breakthrough features?",
	"Will the supply chain improve markedly?",
	"Will currency inflation remain high?",
	"Will sustainability regulations tighten?",
	"Will demand shift to alternatives?",
}

const fallbackForecastExplanation = "Our analysts were unavailable, so this estimate assumes steady inflation of about 20% over five years."

var fallbackDietQuestions = []string{
	"How old are you?",
	"What is your sex?",
	"How active are you on a typical day (sedentary, light, moderate, very active)?",
	"Which diet do you follow (vegetarian, vegan, eggetarian, non-vegetarian)?",
	"Do you have any food allergies or intolerances?",
	"What is your main goal (lose weight, maintain, gain muscle)?",
	"Do you have any medical conditions we should keep in mind?",
	"Which cuisines do you enjoy most?",
}

// fallbackDietPlan renders the offline plan from the intake answers.
func fallbackDietPlan(questions, answers []string) string {
	var sb strings.Builder
	sb.WriteString("Summary\n")
	sb.WriteString("A balanced, Indian-friendly plan built from your answers:\n")
	for i, q := range questions {
		a := "not answered"
		if i < len(answers) && strings.TrimSpace(answers[i]) != "" {
			a = strings.TrimSpace(answers[i])
		}
		fmt.Fprintf(&sb, "- %s %s\n", q, a)
	}
	sb.WriteString("\n")
	sb.WriteString("Daily macro targets\n")
	sb.WriteString("- Carbohydrates 45-55%, protein 20-25%, fats 25-30%.\n")
	sb.WriteString("- 8-10 glasses of water; add coconut water in hot weather.\n\n")
	sb.WriteString("One sample day\n")
	sb.WriteString("- Breakfast: oats upma with curd (vegan: soy curd)\n")
	sb.WriteString("- Snack: seasonal fruit and a handful of nuts (skip nuts if allergic)\n")
	sb.WriteString("- Lunch: dal, brown rice and salad (non-veg: add chicken or eggs)\n")
	sb.WriteString("- Snack: buttermilk or green tea\n")
	sb.WriteString("- Dinner: roti with paneer or tofu bhurji and cucumber raita\n\n")
	sb.WriteString("7-day rotation\n")
	for _, day := range []string{
		"Mon: poha, rajma rice, vegetable khichdi",
		"Tue: idli sambar, chole with roti, moong dal soup",
		"Wed: besan chilla, curd rice, mixed veg curry",
		"Thu: vegetable upma, dal tadka with rice, paneer tikka",
		"Fri: dosa, sprouts salad bowl, palak dal with roti",
		"Sat: paratha with curd, millet pulao, stir-fried vegetables",
		"Sun: fruit bowl, homestyle thali, light soup",
	} {
		fmt.Fprintf(&sb, "- %s\n", day)
	}
	sb.WriteString("\nTips\n")
	sb.WriteString("- Prep staples at the weekend and choose seasonal produce.\n")
	sb.WriteString("- Walk 20-30 minutes daily.\n\n")
	sb.WriteString("This plan is general guidance, not medical advice; consult a professional for specific conditions.")
	return sb.String()
}

var glamCategories = []string{
	"Cleanser", "Toner", "Moisturizer", "Sunscreen", "Serum (Vit C)", "Serum (Hyaluronic)", "Exfoliant",
	"Face Mask", "Eye Cream", "Lip Balm SPF", "Body Lotion", "Deodorant", "Shampoo", "Conditioner",
	"Hair Mask", "Hand Cream", "Night Cream", "Face Oil", "Makeup Remover", "BB/CC Cream", "Beard Oil",
	"Aftershave", "Razor", "Foot Cream", "Sunscreen Stick", "Tinted Sunscreen", "Body Wash", "Face Mist",
	"Sheet Mask", "Nail Care",
}

// fillerGlamItem is catalog slot i of the offline shop.
func fillerGlamItem(i int) game.GlamItem {
	category := glamCategories[i%len(glamCategories)]
	eco := i%3 == 0
	desc := "Dermat-tested everyday essential."
	if eco {
		desc = "Eco-friendly formula with minimal packaging."
	}
	return game.GlamItem{
		Name:        category,
		Price:       350 + (i*137)%1200 + (i%5)*100,
		Category:    category,
		Eco:         eco,
		Description: desc,
	}
}

// fallbackFortune is the offline trio of predictions.
func fallbackFortune(name, month, place, hobby string) string {
	return strings.Join([]string{
		fmt.Sprintf("1) In %s, %s will accidentally become the local %s celebrity after capturing a legendary selfie at %s. Expect spontaneous high-fives everywhere.", month, name, hobby, place),
		fmt.Sprintf("2) A seagull will deliver a handwritten invitation to a secret club for people who love %s. Membership perk: unlimited snacks (please share).", hobby),
		fmt.Sprintf(`3) Your future self declares a national holiday called "%s Day" where everyone must say "wow" at least 7 times while thinking about %s.`, name, place),
	}, "\n")
}

func randomShuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}
