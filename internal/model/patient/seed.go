package patient

import "time"

// Seed provides the default patient files used by the teaching scenarios.
func Seed() []Profile {
	return []Profile{
		{
			ID:            "anna-zank",
			FirstName:     "Anna",
			LastName:      "Zank",
			BirthDate:     date(1935, time.September, 1),
			HeightCM:      intPtr(158),
			WeightKG:      floatPtr(51.5),
			GenderMedical: "weiblich",
			EthnicOrigin:  "kaukasisch",
			Anamneses: []Anamnesis{
				{Category: "Krankheitsverlauf", Answer: "Heute Morgen auf die rechte Seite gestürzt, mit dem RTW in die Klinik geliefert."},
				{Category: "Vorerkrankungen", Answer: "Art. Hypertonie; ausgeprägte senile Alzheimer-Demenz; chronische Niereninsuffizienz G3A2; Varikosis bds.; Z.n. offener Appendektomie (im Alter von 21 Jahren)"},
				{Category: "Medikamente", Answer: "Ramipril 5mg p.o. 1-0-1; Amlodipin 5mg p.o. 1-0-1; Donepezil 10mg p.o. 0-0-1; Vitamin D 10.000 IE 1x/Woche"},
				{Category: "Allergien", Answer: "Keine"},
				{Category: "Familienanamnesis", Answer: "Vater: verstorben an Prostata-CA; Mutter: Diabetes Typ II ab 55 Jahren"},
				{Category: "Kardiovaskuläre Risikofaktoren", Answer: "Art. Hypertonie; kein Alkohol- oder Nikotinabusus"},
				{Category: "Sozial-/Berufsanamnesis", Answer: "Beruf: pensioniert, war Lehrerin; Familienstand: verheiratet; Kinder: 2 Töchter"},
			},
		},
		{
			ID:            "maria-meier",
			FirstName:     "Maria",
			LastName:      "Meier",
			BirthDate:     date(1983, time.September, 1),
			HeightCM:      intPtr(169),
			WeightKG:      floatPtr(58.5),
			GenderMedical: "weiblich",
			EthnicOrigin:  "kaukasisch",
			Anamneses: []Anamnesis{
				{Category: "Krankheitsverlauf", Answer: "Holozephaler Kopfschmerz von dumpfem, drückendem Charakter mit retrobulbärem Fokus, fortbestehend seit einer rezenten Covid-19-Infektion vor zwei Wochen. Lageabhängigkeit der Schmerzen verneint. Keine häufigen Kopfschmerzen in der Vorgeschichte. Aktuell keine akute Beeinträchtigung der Sehkraft, subjektiv kein Gesichtsfeldausfall."},
				{Category: "Vorerkrankungen", Answer: "Dermatologisch: stressinduzierte Akne/Rosazea conglobata, Botox-Injektion fazial vor 1 Monat; Gynäkologisch: Hysterektomie vor 10 Jahren nach mehreren Fehlgeburten; Pädiatrisch: EBV in der Jugend"},
				{Category: "Medikamente", Answer: "Isotretinoin 20mg p.o. 1-0-1-0 seit 40 Tagen wegen Rosazea; Dexamethason/Neomycin-Augentropfen 1-0-1 wegen Konjunktivitis seit 3 Wochen"},
				{Category: "Allergien", Answer: "Keine"},
				{Category: "Familienanamnesis", Answer: "Schwester: Trigeminusneuralgie mit 10 Jahren"},
				{Category: "Kardiovaskuläre Risikofaktoren", Answer: "1 Glas Wein/Tag; kein Nikotinkonsum"},
				{Category: "Sozial-/Berufsanamnesis", Answer: "Beruf: kaufmännische Abteilung als Privatassistenz, überwiegend Büroarbeit; Familienstand: geschieden; Kinder: 1 Sohn"},
			},
		},
	}
}

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
