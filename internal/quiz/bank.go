// Package quiz ships a small built-in question bank and draws battle
// rounds from it. The bank is deliberately minimal; the battle flow only
// needs a source of questions, not a curriculum.
package quiz

// Question is one multiple-choice question. Answer indexes Choices.
type Question struct {
	ID      string
	Subject string
	Prompt  string
	Choices []string
	Answer  int
}

var bank = []Question{
	{ID: "math-01", Subject: "Math", Prompt: "What is 12 × 8?", Choices: []string{"88", "96", "104", "112"}, Answer: 1},
	{ID: "math-02", Subject: "Math", Prompt: "What is the square root of 144?", Choices: []string{"10", "11", "12", "14"}, Answer: 2},
	{ID: "math-03", Subject: "Math", Prompt: "What is 7³?", Choices: []string{"343", "243", "349", "327"}, Answer: 0},
	{ID: "math-04", Subject: "Math", Prompt: "What is 15% of 200?", Choices: []string{"15", "20", "30", "35"}, Answer: 2},
	{ID: "math-05", Subject: "Math", Prompt: "Solve: 3x + 5 = 20", Choices: []string{"x = 3", "x = 5", "x = 7", "x = 15"}, Answer: 1},
	{ID: "sci-01", Subject: "Science", Prompt: "What gas do plants absorb from the air?", Choices: []string{"Oxygen", "Nitrogen", "Carbon dioxide", "Hydrogen"}, Answer: 2},
	{ID: "sci-02", Subject: "Science", Prompt: "How many planets orbit the Sun?", Choices: []string{"7", "8", "9", "10"}, Answer: 1},
	{ID: "sci-03", Subject: "Science", Prompt: "What is the chemical symbol for iron?", Choices: []string{"Ir", "In", "Fe", "I"}, Answer: 2},
	{ID: "sci-04", Subject: "Science", Prompt: "What force keeps us on the ground?", Choices: []string{"Magnetism", "Friction", "Gravity", "Inertia"}, Answer: 2},
	{ID: "sci-05", Subject: "Science", Prompt: "What is the powerhouse of the cell?", Choices: []string{"Nucleus", "Ribosome", "Mitochondria", "Chloroplast"}, Answer: 2},
	{ID: "hist-01", Subject: "History", Prompt: "In which year did World War II end?", Choices: []string{"1943", "1944", "1945", "1946"}, Answer: 2},
	{ID: "hist-02", Subject: "History", Prompt: "Who was the first president of the United States?", Choices: []string{"Jefferson", "Lincoln", "Adams", "Washington"}, Answer: 3},
	{ID: "hist-03", Subject: "History", Prompt: "Which empire built the Colosseum?", Choices: []string{"Greek", "Roman", "Ottoman", "Persian"}, Answer: 1},
	{ID: "hist-04", Subject: "History", Prompt: "The Great Wall is located in which country?", Choices: []string{"Japan", "Mongolia", "China", "Korea"}, Answer: 2},
	{ID: "lang-01", Subject: "Language", Prompt: "Which word is a synonym of 'rapid'?", Choices: []string{"Slow", "Swift", "Steady", "Late"}, Answer: 1},
	{ID: "lang-02", Subject: "Language", Prompt: "What is the plural of 'analysis'?", Choices: []string{"Analysises", "Analyses", "Analysi", "Analysis"}, Answer: 1},
	{ID: "lang-03", Subject: "Language", Prompt: "Which is an antonym of 'scarce'?", Choices: []string{"Rare", "Sparse", "Abundant", "Short"}, Answer: 2},
	{ID: "lang-04", Subject: "Language", Prompt: "A word that imitates a sound is called?", Choices: []string{"Metaphor", "Onomatopoeia", "Simile", "Alliteration"}, Answer: 1},
}

// Subjects returns the distinct subjects in the bank, in bank order.
func Subjects() []string {
	seen := make(map[string]bool)
	var subjects []string
	for _, q := range bank {
		if seen[q.Subject] {
			continue
		}
		seen[q.Subject] = true
		subjects = append(subjects, q.Subject)
	}
	return subjects
}

// BySubject returns all questions for a subject.
func BySubject(subject string) []Question {
	var qs []Question
	for _, q := range bank {
		if q.Subject == subject {
			qs = append(qs, q)
		}
	}
	return qs
}

// ByIDs resolves stored question IDs back to questions, skipping unknown
// IDs. It drives the review-mistakes round.
func ByIDs(ids []string) []Question {
	byID := make(map[string]Question, len(bank))
	for _, q := range bank {
		byID[q.ID] = q
	}
	var qs []Question
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			qs = append(qs, q)
		}
	}
	return qs
}
