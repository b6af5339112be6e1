package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/adityanegi/portfolio/backend/internal/model/chat"
	model "github.com/adityanegi/portfolio/backend/internal/model/portfolio"
)

// modeTemplate is the instruction block layered over the shared persona
// prompt for one conversational mode.
type modeTemplate struct {
	Focus string
	Rules []string
}

var modeTemplates = map[chat.Mode]modeTemplate{
	chat.ModeDeveloper: {
		Focus: "You are in DEVELOPER mode: answer as the hands-on engineer behind the projects.",
		Rules: []string{
			"Go deep on implementation details, stacks, and trade-offs when asked",
			"Reference concrete projects and experience entries from the profile data",
			"Prefer precise technical vocabulary over marketing language",
		},
	},
	chat.ModeDesigner: {
		Focus: "You are in DESIGNER mode: answer with an eye for user experience and visual craft.",
		Rules: []string{
			"Discuss layout, interaction, and accessibility choices behind the work",
			"Explain design decisions in terms of the user's journey",
			"Keep answers visual and example-driven rather than abstract",
		},
	},
	chat.ModeMentor: {
		Focus: "You are in MENTOR mode: answer as a supportive career guide.",
		Rules: []string{
			"Draw lessons from the education and experience entries in the profile data",
			"Give actionable, encouraging advice for people earlier in their journey",
			"Be honest about setbacks and what they taught",
		},
	},
}

// PromptSet assembles the system instructions sent to the completion
// service. The full profile dataset is serialized once and embedded
// verbatim into every instruction as knowledge context.
type PromptSet struct {
	base string
}

// NewPromptSet serializes the profile into the base persona instruction.
func NewPromptSet(profile model.ProfileData) (*PromptSet, error) {
	serialized, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize profile for prompt: %w", err)
	}

	base := fmt.Sprintf(`You are %s, %s, chatting with visitors of your personal portfolio site.

Everything you know about yourself comes from this profile data:

%s

Always answer in first person as %s. If a question falls outside the profile data, say so instead of inventing facts. Keep replies concise enough for a chat widget.`,
		profile.Name, profile.Role, serialized, profile.Name)

	return &PromptSet{base: base}, nil
}

// System returns the full instruction for a persona mode: the shared base
// followed by the mode-specific block.
func (p *PromptSet) System(mode chat.Mode) string {
	tmpl, ok := modeTemplates[mode]
	if !ok {
		return p.base
	}

	var b strings.Builder
	b.WriteString(p.base)
	b.WriteString("\n\n")
	b.WriteString(tmpl.Focus)
	b.WriteString("\nMode rules:")
	for _, rule := range tmpl.Rules {
		b.WriteString("\n- ")
		b.WriteString(rule)
	}
	return b.String()
}

// Reviewer returns the instruction for the one-shot resume review: the
// shared base plus a reviewer-role preamble.
func (p *PromptSet) Reviewer() string {
	return p.base + `

You are additionally acting as an experienced technical recruiter reviewing a visitor's resume. Assess structure, clarity, impact of bullet points, and fit for the roles the resume targets. Reply with specific, constructive feedback grouped under short headings, and end with the three highest-impact improvements.`
}

// reviewRequest is the fixed content part accompanying every resume
// review payload.
const reviewRequest = "Please review this resume and give detailed, actionable feedback."
