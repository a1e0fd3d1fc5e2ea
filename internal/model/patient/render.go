package patient

import (
	"fmt"
	"strconv"
	"strings"
)

// Placeholders rendered for absent data. The prompt relies on these being
// present rather than fields being dropped, so the model never invents
// history where the file has none.
const (
	noEntry = "Keine Angaben"
	unknown = "Unbekannt"
)

// renderedCategories is the fixed list of anamnesis sections every rendered
// profile contains, as (display label, lookup category) pairs. Lookup keys
// follow the legacy record categories, which differ from the labels for the
// medication, family and social sections.
var renderedCategories = [][2]string{
	{"Krankheitsverlauf", "Krankheitsverlauf"},
	{"Vorerkrankungen", "Vorerkrankungen"},
	{"Dauermedikation", "Medikamente"},
	{"Allergien", "Allergien"},
	{"Familienanamnese", "Familienanamnesis"},
	{"Kardiovaskuläre Risikofaktoren", "Kardiovaskuläre Risikofaktoren"},
	{"Sozial-/Berufsanamnese", "Sozial-/Berufsanamnesis"},
}

// Render formats a profile into the text block injected into the system
// prompt. It is a pure function of the profile: identical input yields a
// byte-for-byte identical block. Category lookup is case-insensitive and
// missing data renders as an explicit placeholder.
func Render(p Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\n", scalarOr(strings.TrimSpace(p.FirstName+" "+p.LastName), unknown))
	fmt.Fprintf(&b, "Geburtsdatum: %s\n", birthDate(p))
	fmt.Fprintf(&b, "Ethnie: %s\n", scalarOr(p.EthnicOrigin, unknown))
	fmt.Fprintf(&b, "Größe: %s\n", height(p))
	fmt.Fprintf(&b, "Gewicht: %s\n", weight(p))
	fmt.Fprintf(&b, "Geschlecht (medizinisch): %s\n", scalarOr(p.GenderMedical, unknown))

	for _, section := range renderedCategories {
		label, category := section[0], section[1]
		fmt.Fprintf(&b, "\n---\n%s:\n%s\n", label, anamnesisAnswer(p, category))
	}

	return b.String()
}

func anamnesisAnswer(p Profile, category string) string {
	for _, entry := range p.Anamneses {
		if strings.EqualFold(entry.Category, category) {
			if answer := strings.TrimSpace(entry.Answer); answer != "" {
				return answer
			}
			return noEntry
		}
	}
	return noEntry
}

func birthDate(p Profile) string {
	if p.BirthDate == nil {
		return unknown
	}
	return p.BirthDate.Format("02.01.2006")
}

func height(p Profile) string {
	if p.HeightCM == nil {
		return unknown
	}
	return fmt.Sprintf("%d cm", *p.HeightCM)
}

func weight(p Profile) string {
	if p.WeightKG == nil {
		return unknown
	}
	return strconv.FormatFloat(*p.WeightKG, 'f', -1, 64) + " kg"
}

func scalarOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
