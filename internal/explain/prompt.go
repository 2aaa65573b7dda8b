package explain

import (
	"fmt"
	"strings"

	"github.com/watchdog/watchdog/internal/core"
)

const systemPrompt = "You are a cybersecurity assistant for an OSINT-based email exposure analysis tool. " +
	"Risk score and risk level are already calculated. You ONLY explain and recommend."

// BuildPrompt renders the user prompt for in. Breach details are reduced to
// presence; the model never sees breach names.
func BuildPrompt(in core.ExplainInput) string {
	platforms := "None"
	if len(in.Platforms) > 0 {
		platforms = strings.Join(in.Platforms, ", ")
	}
	breaches := "None"
	if in.BreachCount > 0 {
		breaches = "Present"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Email:\n%s\n\n", in.Email)
	fmt.Fprintf(&b, "Platforms found (%d):\n%s\n\n", len(in.Platforms), platforms)
	fmt.Fprintf(&b, "Historical breach signals (internal only):\n%s\n\n", breaches)
	fmt.Fprintf(&b, "Risk Score: %d\nRisk Level: %s\n\n", in.Risk.Score, in.Risk.Level)
	fmt.Fprintf(&b, "Tasks:\n")
	fmt.Fprintf(&b, "1. Explain why the risk level is %s.\n", in.Risk.Level)
	b.WriteString("2. Explain what attackers could infer.\n")
	b.WriteString("3. Give 3-5 practical recommendations.\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Do NOT change the score or level\n")
	b.WriteString("- Do NOT mention breach names\n")
	b.WriteString("- Calm, educational tone\n")
	b.WriteString("- Return ONLY valid JSON:\n\n")
	b.WriteString(`{"explanation": "2-3 sentences", "recommendations": ["rec 1", "rec 2", "rec 3"]}`)
	b.WriteString("\n")
	return b.String()
}

// Messages wraps BuildPrompt in a system+user chat.
func Messages(in core.ExplainInput) []core.Message {
	return []core.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: BuildPrompt(in)},
	}
}
