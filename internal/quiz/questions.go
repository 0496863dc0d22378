package quiz

import "github.com/Nadercr7/Shamel/internal/models"

// Questions returns the bundled question set for lang
func Questions(lang models.Language) []models.QuizQuestion {
	if lang == models.Arabic {
		return questionsAr
	}
	return questionsEn
}

var questionsEn = []models.QuizQuestion{
	{
		Question:      "Which planet is known as the Red Planet?",
		Options:       []string{"Earth", "Mars", "Jupiter", "Saturn"},
		CorrectAnswer: "Mars",
		Explanation:   "Mars is often called the 'Red Planet' because of its reddish appearance, which comes from iron oxide (rust) on its surface.",
	},
	{
		Question:      "What is the largest mammal in the world?",
		Options:       []string{"Elephant", "Blue Whale", "Giraffe", "Great White Shark"},
		CorrectAnswer: "Blue Whale",
		Explanation:   "The Blue Whale is the largest animal on Earth, weighing as much as 200 tons (approximately 33 elephants).",
	},
	{
		Question:      "In which year did the first person walk on the moon?",
		Options:       []string{"1965", "1969", "1972", "1958"},
		CorrectAnswer: "1969",
		Explanation:   "Neil Armstrong and Buzz Aldrin landed on the moon on July 20, 1969, during the Apollo 11 mission.",
	},
	{
		Question:      "What is the chemical symbol for water?",
		Options:       []string{"O2", "CO2", "H2O", "NaCl"},
		CorrectAnswer: "H2O",
		Explanation:   "Water is composed of two hydrogen (H) atoms and one oxygen (O) atom, hence its chemical formula H2O.",
	},
}

var questionsAr = []models.QuizQuestion{
	{
		Question:      "أي كوكب يُعرف بالكوكب الأحمر؟",
		Options:       []string{"الأرض", "المريخ", "المشتري", "زحل"},
		CorrectAnswer: "المريخ",
		Explanation:   "غالباً ما يُطلق على المريخ اسم 'الكوكب الأحمر' بسبب مظهره المحمر، الذي يأتي من أكسيد الحديد (الصدأ) على سطحه.",
	},
	{
		Question:      "ما هو أكبر حيوان ثديي في العالم؟",
		Options:       []string{"الفيل", "الحوت الأزرق", "الزرافة", "القرش الأبيض الكبير"},
		CorrectAnswer: "الحوت الأزرق",
		Explanation:   "الحوت الأزرق هو أكبر حيوان على وجه الأرض، ويزن ما يصل إلى 200 طن (حوالي 33 فيلاً).",
	},
	{
		Question:      "في أي عام مشى أول شخص على سطح القمر؟",
		Options:       []string{"1965", "1969", "1972", "1958"},
		CorrectAnswer: "1969",
		Explanation:   "هبط نيل أرمسترونج وباز ألدرين على سطح القمر في 20 يوليو 1969، خلال مهمة أبولو 11.",
	},
	{
		Question:      "ما هو الرمز الكيميائي للماء؟",
		Options:       []string{"O2", "CO2", "H2O", "NaCl"},
		CorrectAnswer: "H2O",
		Explanation:   "يتكون الماء من ذرتي هيدروجين (H) وذرة أكسجين واحدة (O)، ومن هنا جاءت صيغته الكيميائية H2O.",
	},
}
