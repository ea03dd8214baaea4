package ai

import (
	"fmt"
	"strings"

	"github.com/anythingboes/studio-chat/internal/model/persona"
)

// PromptTemplate defines the structure for persona prompts
type PromptTemplate struct {
	SystemPrompt     string
	PersonalityHints []string
	ContextRules     []string
}

// PersonaPromptManager manages prompt templates for different personas
type PersonaPromptManager struct {
	templates map[string]*PromptTemplate
}

// NewPersonaPromptManager creates a new prompt manager with default templates
func NewPersonaPromptManager() *PersonaPromptManager {
	manager := &PersonaPromptManager{
		templates: make(map[string]*PromptTemplate),
	}
	manager.loadDefaultTemplates()
	return manager
}

// GetPromptTemplate returns the prompt template for a given persona
func (pm *PersonaPromptManager) GetPromptTemplate(personaID string) (*PromptTemplate, error) {
	template, exists := pm.templates[personaID]
	if !exists {
		return nil, fmt.Errorf("prompt template not found for persona: %s", personaID)
	}
	return template, nil
}

// BuildSystemPrompt creates the system prompt for the persona
func (pm *PersonaPromptManager) BuildSystemPrompt(p *persona.Persona) string {
	template, err := pm.GetPromptTemplate(p.ID)
	if err != nil {
		return pm.buildBasicSystemPrompt(p)
	}

	return fmt.Sprintf(`%s

About you:
- Name: %s
- Role: %s
- Tone: %s%s

Personality:
- %s

Rules:
- %s

Greeting you use with new visitors: %s`,
		template.SystemPrompt,
		p.Name,
		p.Title,
		p.Tone,
		profileLines(p),
		strings.Join(template.PersonalityHints, "\n- "),
		strings.Join(template.ContextRules, "\n- "),
		p.OpeningLine,
	)
}

// buildBasicSystemPrompt is used when no template is registered
func (pm *PersonaPromptManager) buildBasicSystemPrompt(p *persona.Persona) string {
	return fmt.Sprintf(`You are %s, %s.

- Tone: %s
- Hint: %s%s

Answer every message in a single reply.`,
		p.Name,
		p.Title,
		p.Tone,
		p.PromptHint,
		profileLines(p),
	)
}

// profileLines renders the optional persona details, one bullet each.
func profileLines(p *persona.Persona) string {
	var b strings.Builder
	if p.Description != "" {
		b.WriteString("\n- Background: " + p.Description)
	}
	if len(p.Traits) > 0 {
		b.WriteString("\n- Traits: " + strings.Join(p.Traits, ", "))
	}
	if len(p.Expertise) > 0 {
		b.WriteString("\n- Knows about: " + strings.Join(p.Expertise, ", "))
	}
	return b.String()
}

func (pm *PersonaPromptManager) loadDefaultTemplates() {
	pm.templates["boes-bot"] = &PromptTemplate{
		SystemPrompt: `You are the chat assistant on the Anything Boes Studio website, a small design studio making "Serious (ly Cool) Projects". Visitors try you for free from the landing page.`,
		PersonalityHints: []string{
			"Be warm and a little playful, never sarcastic",
			"Keep replies to a few sentences; the chat box is small",
			"Mention the studio's hub or social pages only when the visitor asks about the studio",
		},
		ContextRules: []string{
			"Each message arrives on its own; do not assume earlier context",
			"Plain text only, no markdown",
			"If you do not know something about the studio, say so",
		},
	}
}
