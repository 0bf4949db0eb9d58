package survey

// Curated women's health taxonomy. Categories group symptoms for the quiz
// UI only; they have no effect on the analytics.

type seedSymptom struct {
	name        string
	description string
}

type seedCategory struct {
	name     string
	icon     string
	order    int
	symptoms []seedSymptom
}

var taxonomy = []seedCategory{
	{
		name: "Menstrual & Cycle", icon: "🩸", order: 1,
		symptoms: []seedSymptom{
			{"Heavy periods", "Soaking through a pad/tampon every 1-2 hours"},
			{"Irregular cycles", "Cycles shorter than 21 or longer than 35 days"},
			{"Painful cramps", "Pain that interferes with daily activities"},
			{"Spotting between periods", "Light bleeding outside your period"},
			{"Missed periods", "Skipping one or more cycles (not pregnant)"},
			{"PMS mood changes", "Irritability, sadness, or anxiety before your period"},
			{"Bloating around period", "Abdominal swelling or tightness near your cycle"},
		},
	},
	{
		name: "Energy & Sleep", icon: "😴", order: 2,
		symptoms: []seedSymptom{
			{"Chronic fatigue", "Feeling tired even after a full night's sleep"},
			{"Insomnia", "Difficulty falling or staying asleep"},
			{"Afternoon energy crash", "Severe energy drop in the mid-afternoon"},
			{"Brain fog", "Difficulty concentrating, forgetfulness"},
			{"Waking up exhausted", "Not feeling rested despite sleeping 7+ hours"},
		},
	},
	{
		name: "Pain & Physical", icon: "💪", order: 3,
		symptoms: []seedSymptom{
			{"Chronic pelvic pain", "Ongoing pain in the lower abdomen"},
			{"Pain during intercourse", "Discomfort or pain during sex"},
			{"Lower back pain", "Persistent ache in the lower back"},
			{"Headaches or migraines", "Recurring headaches, especially around your cycle"},
			{"Joint pain", "Aching or stiffness in joints"},
			{"Breast tenderness", "Soreness or sensitivity in breasts"},
		},
	},
	{
		name: "Skin, Hair & Body", icon: "✨", order: 4,
		symptoms: []seedSymptom{
			{"Hormonal acne", "Breakouts along jawline, chin, or cheeks"},
			{"Hair thinning", "Noticeable hair loss or thinning"},
			{"Excess body hair", "Unwanted hair growth on face, chest, or back"},
			{"Unexplained weight gain", "Gaining weight without diet/lifestyle changes"},
			{"Difficulty losing weight", "Weight that won't budge despite effort"},
			{"Dry skin", "Persistent skin dryness not helped by moisturizer"},
		},
	},
	{
		name: "Mental & Emotional", icon: "🧠", order: 5,
		symptoms: []seedSymptom{
			{"Anxiety", "Persistent worry, nervousness, or unease"},
			{"Depression or low mood", "Ongoing sadness, loss of interest"},
			{"Mood swings", "Rapid emotional shifts without clear cause"},
			{"Irritability", "Getting frustrated or upset more easily than usual"},
			{"Low self-esteem", "Negative self-perception tied to physical symptoms"},
			{"Feeling overwhelmed", "Difficulty coping with normal daily demands"},
		},
	},
	{
		name: "Digestive", icon: "🫄", order: 6,
		symptoms: []seedSymptom{
			{"Bloating", "Frequent abdominal bloating unrelated to cycle"},
			{"Nausea", "Feeling sick to your stomach regularly"},
			{"Constipation", "Infrequent or difficult bowel movements"},
			{"Food sensitivities", "Reactions to foods you used to tolerate"},
		},
	},
	{
		name: "Bladder & Pelvic Floor", icon: "🚿", order: 7,
		symptoms: []seedSymptom{
			{"Frequent urination", "Needing to pee more often than normal"},
			{"Urinary leakage", "Leaking when coughing, sneezing, or exercising"},
			{"Pelvic pressure", "Feeling of heaviness in the pelvic area"},
		},
	},
}

var allSymptomNames = func() []string {
	var names []string
	for _, cat := range taxonomy {
		for _, sym := range cat.symptoms {
			names = append(names, sym.name)
		}
	}
	return names
}()

type seedSpecialist struct {
	specialistType string
	description    string
	whatToExpect   string
	icon           string
	symptoms       []string
}

var specialistSeed = []seedSpecialist{
	{
		specialistType: "OB-GYN (Gynecologist)",
		description:    "Specializes in the female reproductive system — periods, hormones, fertility, and pelvic health.",
		whatToExpect:   "They'll ask about your cycle history, symptoms, and may recommend blood tests or an ultrasound. It's a conversation first — exams only if needed.",
		icon:           "👩‍⚕️",
		symptoms: []string{
			"Heavy periods", "Irregular cycles", "Painful cramps",
			"Spotting between periods", "Missed periods", "Pain during intercourse",
			"Chronic pelvic pain",
		},
	},
	{
		specialistType: "Endocrinologist",
		description:    "Hormone specialist — they diagnose and treat conditions where your hormones are out of balance.",
		whatToExpect:   "Expect blood work to check hormone levels (thyroid, insulin, testosterone, etc.). They'll look at the full picture — symptoms, labs, and history.",
		icon:           "🔬",
		symptoms: []string{
			"Irregular cycles", "Excess body hair", "Hormonal acne",
			"Hair thinning", "Unexplained weight gain", "Difficulty losing weight",
			"Chronic fatigue", "Missed periods",
		},
	},
	{
		specialistType: "Therapist / Psychologist",
		description:    "Mental health professional who helps with emotional and psychological well-being through talk therapy.",
		whatToExpect:   "First session is usually getting to know you — your background, what you're dealing with, and your goals. No pressure, no judgment.",
		icon:           "🧠",
		symptoms: []string{
			"Anxiety", "Depression or low mood", "Mood swings",
			"Irritability", "Low self-esteem", "Feeling overwhelmed",
			"PMS mood changes", "Insomnia",
		},
	},
	{
		specialistType: "Pelvic Floor Physical Therapist",
		description:    "Specializes in the muscles that support your bladder, uterus, and bowel. More common than you think!",
		whatToExpect:   "They'll assess your pelvic floor strength and coordination. Treatment often includes exercises, stretches, and lifestyle tips. It's not scary — think of it like PT for your core.",
		icon:           "🏋️‍♀️",
		symptoms: []string{
			"Urinary leakage", "Frequent urination", "Pelvic pressure",
			"Pain during intercourse", "Chronic pelvic pain",
		},
	},
	{
		specialistType: "Dermatologist",
		description:    "Skin and hair specialist who can identify whether skin/hair issues have a hormonal root cause.",
		whatToExpect:   "Visual examination of your skin/hair, questions about your cycle and medications. May recommend topical treatments or refer to an endocrinologist if hormonal.",
		icon:           "🪞",
		symptoms: []string{
			"Hormonal acne", "Hair thinning", "Excess body hair", "Dry skin",
		},
	},
	{
		specialistType: "Gastroenterologist",
		description:    "Digestive system specialist — helps with gut issues that may be connected to hormonal changes.",
		whatToExpect:   "They'll ask about your diet, bowel habits, and symptom patterns. May recommend dietary changes, tests, or further investigation.",
		icon:           "🫄",
		symptoms: []string{
			"Bloating", "Nausea", "Constipation", "Food sensitivities",
		},
	},
	{
		specialistType: "Primary Care Doctor",
		description:    "Your general doctor — a great starting point if you're unsure where to begin. They can run initial tests and refer you to specialists.",
		whatToExpect:   "A general check-up, blood work, and a conversation about all your symptoms. They're your quarterback — they coordinate your care.",
		icon:           "🩺",
		symptoms: []string{
			"Chronic fatigue", "Brain fog", "Afternoon energy crash",
			"Waking up exhausted", "Headaches or migraines", "Joint pain",
			"Lower back pain", "Breast tenderness",
		},
	},
}

// Symptom clusters with population prevalence, modeled on reported rates in
// medical literature. Only the seeder knows about these; the engine derives
// correlations purely from stored responses.
type symptomCluster struct {
	prevalence float64
	symptoms   []string
}

var clusters = []symptomCluster{
	{0.12, []string{ // PCOS-like
		"Irregular cycles", "Hormonal acne", "Excess body hair",
		"Difficulty losing weight", "Hair thinning", "Anxiety",
	}},
	{0.25, []string{ // PMS/PMDD-like
		"PMS mood changes", "Bloating around period", "Painful cramps",
		"Mood swings", "Breast tenderness", "Irritability",
	}},
	{0.10, []string{ // endometriosis-like
		"Painful cramps", "Chronic pelvic pain", "Pain during intercourse",
		"Heavy periods", "Bloating", "Chronic fatigue",
	}},
	{0.20, []string{ // fatigue/thyroid-like
		"Chronic fatigue", "Brain fog", "Afternoon energy crash",
		"Waking up exhausted", "Unexplained weight gain", "Dry skin",
	}},
	{0.30, []string{ // mental health
		"Anxiety", "Depression or low mood", "Insomnia",
		"Feeling overwhelmed", "Irritability", "Brain fog",
	}},
	{0.15, []string{ // pelvic floor
		"Urinary leakage", "Frequent urination", "Pelvic pressure",
		"Lower back pain",
	}},
	{0.20, []string{ // digestive
		"Bloating", "Constipation", "Food sensitivities", "Nausea",
	}},
}

// Respondent mix skews toward the 25-44 range; severity 0 means the
// respondent skipped the rating.
var (
	stageWeights    = []float64{0.08, 0.18, 0.28, 0.25, 0.15, 0.06}
	severityWeights = []float64{0.20, 0.35, 0.30, 0.15}
)
