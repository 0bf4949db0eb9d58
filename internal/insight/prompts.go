package insight

import (
	"fmt"
	"strings"
)

// Prompt builders for the text-generation collaborator. Prompts are written
// to be warm, non-diagnostic and grounded in the real percentages we pass
// in; the matching fallbacks are deterministic so a generation outage still
// yields a complete bundle.

const narrativeFallback = "We're having trouble generating your explanation right now. " +
	"But know this — your symptoms are more common than you think, and you're not alone."

const introFallback = "Your body is always talking to you. " +
	"Let's find out what it's saying — and how many other women are hearing the same thing."

func specialistFallback(specialistType, whatToExpect string) string {
	return fmt.Sprintf("Based on your symptoms, a %s could be a great next step. %s", specialistType, whatToExpect)
}

func narrativePrompt(symptomNames []string, lifeStage string, prevalence []PrevalenceRow, cooccurring []CooccurringRow) string {
	var prevLines strings.Builder
	for _, row := range prevalence {
		fmt.Fprintf(&prevLines, "  - %s: reported by %.1f%% of women\n", row.SymptomName, row.Percentage)
	}

	coLines := "  No strong co-occurrences found.\n"
	if len(cooccurring) > 0 {
		var b strings.Builder
		for _, row := range cooccurring {
			fmt.Fprintf(&b, "  - %s: %.1f%% overlap\n", row.SymptomName, row.AvgPercentage)
		}
		coLines = b.String()
	}

	return fmt.Sprintf(`You are a warm, knowledgeable women's health educator writing for the app
"AmIOkay" — a tool that helps women understand their symptoms are more common than they think.

A user in the life stage %q reported these symptoms:
%s

Here is real data from our anonymous database:

HOW COMMON ARE THEIR SYMPTOMS:
%s
SYMPTOMS THAT COMMONLY CO-OCCUR WITH THEIRS:
%s
Write a response that:
1. Opens with a warm, reassuring statement (they came here because they're worried)
2. Explains in plain language WHY these symptoms often appear together (mention hormonal connections, stress responses, or physiological links as relevant)
3. References the real percentages naturally (e.g., "Nearly 40%% of women in your age group report this too")
4. Ends with a gentle, empowering note

RULES:
- 2-3 short paragraphs MAX
- Never diagnose or name specific conditions
- Never say "you might have X"
- Use "many women" and "it's common" language
- Be warm but not condescending
- Write at an 8th grade reading level
- Do NOT use bullet points or headers
- Do NOT start with "Hey there" or "Hey girl" — keep it warm but professional`,
		lifeStage, strings.Join(symptomNames, ", "), prevLines.String(), coLines)
}

func specialistPrompt(specialistType, description string, matchedSymptoms []string, whatToExpect string) string {
	return fmt.Sprintf(`You are a warm, knowledgeable women's health educator for the app "AmIOkay."

Based on a user's symptoms, we're recommending they consider seeing a %s.

About this specialist: %s

The user's symptoms that relate to this specialist:
%s

What to expect at a first visit: %s

Write a short, warm explanation (1-2 paragraphs) that:
1. Connects their specific symptoms to why this type of specialist could help
2. Normalizes seeing this specialist (it's not scary or dramatic)
3. Briefly mentions what a first visit looks like to reduce anxiety

RULES:
- Never diagnose — say "a specialist can help figure out what's going on"
- Be warm, not clinical
- 1-2 short paragraphs only
- No bullet points or headers
- Don't start with "Hey" — keep it warm but professional`,
		specialistType, description, strings.Join(matchedSymptoms, ", "), whatToExpect)
}

func introPrompt() string {
	return `Write a 2-sentence intro for a women's health quiz on an app called "AmIOkay."

The quiz is anonymous and helps women see that their symptoms are shared by many others.

Tone: warm, reassuring, slightly empowering. Like a kind older sister who happens to know a lot about health.

RULES:
- Exactly 2 sentences
- No bullet points
- Don't mention AI or technology
- Don't start with "Hey" or "Welcome"`
}
