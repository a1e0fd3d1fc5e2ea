package patient_test

import (
	"strings"
	"testing"

	"github.com/symptexlab/symptex-api/internal/model/patient"
)

func TestRenderIsDeterministic(t *testing.T) {
	profile := patient.Seed()[0]

	first := patient.Render(profile)
	second := patient.Render(profile)

	if first != second {
		t.Fatal("expected identical output for identical profile")
	}
}

func TestRenderSeededProfile(t *testing.T) {
	rendered := patient.Render(patient.Seed()[0])

	for _, want := range []string{
		"Name: Anna Zank",
		"Geburtsdatum: 01.09.1935",
		"Größe: 158 cm",
		"Gewicht: 51.5 kg",
		"Geschlecht (medizinisch): weiblich",
		"Krankheitsverlauf:",
		"Dauermedikation:",
		"Ramipril 5mg p.o. 1-0-1",
		"Sozial-/Berufsanamnese:",
	} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("rendered block missing %q:\n%s", want, rendered)
		}
	}
}

func TestRenderMissingCategoriesUsePlaceholder(t *testing.T) {
	profile := patient.Profile{
		ID:        "empty",
		FirstName: "Max",
		LastName:  "Mustermann",
	}

	rendered := patient.Render(profile)

	if got := strings.Count(rendered, "Keine Angaben"); got != 7 {
		t.Fatalf("expected placeholder for all 7 categories, found %d:\n%s", got, rendered)
	}
	for _, label := range []string{
		"Krankheitsverlauf:",
		"Vorerkrankungen:",
		"Dauermedikation:",
		"Allergien:",
		"Familienanamnese:",
		"Kardiovaskuläre Risikofaktoren:",
		"Sozial-/Berufsanamnese:",
	} {
		if !strings.Contains(rendered, label) {
			t.Fatalf("section %q must render even without data", label)
		}
	}
}

func TestRenderMissingScalarsUseUnknown(t *testing.T) {
	rendered := patient.Render(patient.Profile{ID: "bare"})

	for _, want := range []string{
		"Name: Unbekannt",
		"Geburtsdatum: Unbekannt",
		"Ethnie: Unbekannt",
		"Größe: Unbekannt",
		"Gewicht: Unbekannt",
		"Geschlecht (medizinisch): Unbekannt",
	} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("rendered block missing %q:\n%s", want, rendered)
		}
	}
}

func TestRenderCategoryLookupIsCaseInsensitive(t *testing.T) {
	profile := patient.Profile{
		ID: "case",
		Anamneses: []patient.Anamnesis{
			{Category: "ALLERGIEN", Answer: "Penicillin"},
		},
	}

	rendered := patient.Render(profile)

	if !strings.Contains(rendered, "Allergien:\nPenicillin") {
		t.Fatalf("expected case-insensitive category match:\n%s", rendered)
	}
}

func TestMemoryStoreFindByID(t *testing.T) {
	store := patient.NewMemoryStore(patient.Seed())

	profile, ok := store.FindByID("maria-meier")
	if !ok {
		t.Fatal("expected maria-meier to be seeded")
	}
	if profile.LastName != "Meier" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	if _, ok := store.FindByID("missing"); ok {
		t.Fatal("expected lookup miss for unknown id")
	}
}
