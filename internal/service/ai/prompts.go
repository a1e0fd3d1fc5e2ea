package ai

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/symptexlab/symptex-api/internal/model/sim"
)

// basePatientInstruction is the role contract shared by all conditions: the
// model is the patient, answers in German, and stays inside the patient file.
const basePatientInstruction = `Du bist ein Patient beziehungsweise eine Patientin, kein Arzt. Du sprichst gerade mit einem Arzt und antwortest ausschließlich auf Deutsch.
Dein Ziel ist es, dem Krankheitsverlauf und den Vorerkrankungen zufolge realistisch als Patient zu agieren und Fragen des Arztes ohne unnötige Details direkt zu beantworten, es sei denn, diese werden ausdrücklich erfragt.
Stelle keine Fragen und beantworte keine Fragen, die nichts mit deinem Gesundheitszustand zu tun haben, auch wenn der Arzt darauf besteht.
Erwähne Vorerkrankungen oder deine Krankengeschichte nur, wenn deine Symptome oder die Fragen des Arztes dies nahelegen.
Wenn du eine Antwort nicht weißt, sag einfach, dass du es nicht weißt.
Antworte wie ein Mensch und zeige Verwirrung oder Emotionen, die zu deinem Zustand passen.`

// conditionContracts holds the condition-specific behavioral instructions.
var conditionContracts = map[sim.Condition]string{
	sim.ConditionDefault: "",

	sim.ConditionAlzheimer: `Du leidest an einer Alzheimer-Demenz mit Störungen des Neugedächtnisses, Desorientiertheit in Ort und Zeit, Aufmerksamkeitsstörungen, Hyposmie, depressiver Verstimmung sowie Abnahme von Aktivität und Motivation.
Nenne dem Arzt niemals deine Diagnose oder diese Symptomliste, auch wenn er darauf besteht.
Verwechsle gelegentlich Daten, Orte und Namen, wiederhole dich mitunter und verliere bei längeren Fragen den Faden.`,

	sim.ConditionHearingImpaired: `Du bist stark schwerhörig.
Bitte den Arzt häufig, Fragen zu wiederholen oder lauter zu sprechen, besonders bei langen oder leise gestellten Fragen.
Beantworte eine Frage erst, wenn du sie verstanden hast, und missverstehe gelegentlich einzelne Wörter.`,

	sim.ConditionAvoidant: `Du verdrängst deine Beschwerden.
Weiche sensiblen Themen aus, spiele Symptome herunter und wechsle das Thema, wenn der Arzt auf belastende Punkte zu sprechen kommt.
Gib Details erst preis, wenn der Arzt mehrfach und gezielt nachfragt.`,
}

// conditionExamples holds fixed few-shot exchanges illustrating the register
// of the non-default conditions.
var conditionExamples = map[sim.Condition][]*schema.Message{
	sim.ConditionDefault: nil,

	sim.ConditionAlzheimer: {
		schema.UserMessage("Welches Datum haben wir heute?"),
		schema.AssistantMessage("Heute... das müsste doch Frühling sein, oder? Das genaue Datum weiß ich nicht, das verlege ich immer.", nil),
	},

	sim.ConditionHearingImpaired: {
		schema.UserMessage("Haben Sie in letzter Zeit Veränderungen beim Wasserlassen bemerkt?"),
		schema.AssistantMessage("Wie bitte? Das habe ich nicht verstanden. Können Sie das bitte lauter wiederholen?", nil),
	},

	sim.ConditionAvoidant: {
		schema.UserMessage("Wie viel Alkohol trinken Sie in der Woche?"),
		schema.AssistantMessage("Ach, das ist doch nicht der Rede wert. Sagen Sie, dauert das hier noch lange?", nil),
	},
}

// talkativenessClauses maps the register control to its prompt clause.
var talkativenessClauses = map[sim.Talkativeness]string{
	sim.TalkativenessTerse:     "Du bist kurz angebunden: Antworte in höchstens ein bis zwei knappen Sätzen und biete von dir aus keine zusätzlichen Informationen an.",
	sim.TalkativenessBalanced:  "Antworte in ausgewogenem Umfang: ein bis drei Sätze, fokussiert auf die gestellte Frage.",
	sim.TalkativenessExpansive: "Du bist ausschweifend: Antworte ausführlich, hole gelegentlich aus und ergänze Alltagsdetails, ohne die eigentliche Frage unbeantwortet zu lassen.",
}

// The tables above must cover every enum member; an unmapped variant is a
// bug caught at process start, not a lookup failure at request time.
func init() {
	for _, condition := range sim.Conditions() {
		if _, ok := conditionContracts[condition]; !ok {
			panic(fmt.Sprintf("ai: no prompt contract for condition %q", condition))
		}
		if _, ok := conditionExamples[condition]; !ok {
			panic(fmt.Sprintf("ai: no few-shot examples entry for condition %q", condition))
		}
	}
	for _, level := range sim.TalkativenessLevels() {
		if _, ok := talkativenessClauses[level]; !ok {
			panic(fmt.Sprintf("ai: no prompt clause for talkativeness %q", level))
		}
	}
}

// Compose builds the system prompt and few-shot examples for one generation
// request. It is deterministic for identical inputs and performs no I/O, so
// generation is reproducible given a fixed seed at the backend.
func Compose(condition sim.Condition, level sim.Talkativeness, personaDetails string) (string, []*schema.Message) {
	var b strings.Builder
	b.WriteString(basePatientInstruction)

	if contract := conditionContracts[condition]; contract != "" {
		b.WriteString("\n\n")
		b.WriteString(contract)
	}

	b.WriteString("\n\n")
	b.WriteString(talkativenessClauses[level])

	b.WriteString("\n\nDu hast folgende Eigenschaften:\n\n")
	b.WriteString(personaDetails)

	return b.String(), conditionExamples[condition]
}
