package summarizer

import "github.com/SaiNageswarS/docqa-boot/document"

// summaryKeys are the keys the reduce prompt asks for, in display order.
var summaryKeys = []string{"research_objective", "methods", "main_results", "conclusions"}

var sectionLabels = map[document.Language]map[string]string{
	document.English: {
		"research_objective": "Research Objective",
		"methods":            "Methods",
		"main_results":       "Main Results",
		"conclusions":        "Conclusions",
	},
	document.Indonesian: {
		"research_objective": "Tujuan Penelitian",
		"methods":            "Metode",
		"main_results":       "Hasil Utama",
		"conclusions":        "Kesimpulan",
	},
}

var notFoundText = map[document.Language]string{
	document.English:    "Not found.",
	document.Indonesian: "Tidak ditemukan.",
}

var noContextAnswer = map[document.Language]string{
	document.Indonesian: "Hmm, saya tidak melihat jawaban yang pas dari data saat ini. Bisa jadi pertanyaannya perlu sedikit diperjelas.",
	document.English:    "Hmm, I can't seem to find a suitable answer from the current data. Perhaps the question could be clarified a bit.",
}
