package openai

import (
	"fmt"
	"strings"
)

// StoryParams carries the child attributes and story parameters the
// frontend collects.
type StoryParams struct {
	ChildName         string
	ChildAge          int
	ChildGender       string // "menino" | "menina"
	StoryTheme        string
	StoryMood         string
	StoryValues       []string
	AdditionalDetails string
}

const systemPrompt = `Você é um especialista em criar histórias infantis mágicas e educativas.
Suas histórias são conhecidas por serem:
- Envolventes e adequadas à idade
- Ricas em imaginação e elementos mágicos
- Educativas e com valores positivos
- Estruturadas em parágrafos claros
- Com títulos criativos e cativantes`

// Literal markers the model is instructed to emit; ParseStory splits on
// these.
const (
	titleMarker   = "TÍTULO:"
	contentMarker = "HISTÓRIA:"
)

func BuildPrompt(p StoryParams) string {
	gender := "uma menina"
	if p.ChildGender == "menino" {
		gender = "um menino"
	}

	mood := p.StoryMood
	if mood == "" {
		mood = "feliz"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Crie uma história infantil mágica em português para %s, %s de %d anos.\n\n", p.ChildName, gender, p.ChildAge)
	fmt.Fprintf(&b, "Tema principal: %s\n", p.StoryTheme)
	fmt.Fprintf(&b, "Tom da história: %s\n", mood)
	if len(p.StoryValues) > 0 {
		fmt.Fprintf(&b, "Valores a serem ensinados: %s\n", strings.Join(p.StoryValues, ", "))
	}
	if p.AdditionalDetails != "" {
		fmt.Fprintf(&b, "Detalhes sobre a criança: %s\n", p.AdditionalDetails)
	}
	fmt.Fprintf(&b, `
Instruções específicas:
1. Crie um título criativo e cativante que inclua elementos mágicos
2. Use linguagem apropriada para %d anos
3. Divida a história em 4-6 parágrafos curtos e bem estruturados
4. Use o nome %s como protagonista
5. Inclua elementos de:
   - Imaginação e magia
   - Desenvolvimento pessoal
   - Interação com outros personagens
   - Resolução positiva de desafios
6. Termine com uma mensagem que reforce os valores escolhidos
7. A história deve ter entre 300-500 palavras

Formato da resposta:
%s [Título criativo da história]
%s [Conteúdo da história em parágrafos]`, p.ChildAge, p.ChildName, titleMarker, contentMarker)

	return b.String()
}

// ParseStory splits the model reply at the literal markers. When the
// markers are missing the whole text becomes the content under a templated
// title, so a sloppy completion still renders.
func ParseStory(childName, raw string) GeneratedStory {
	var title, content string

	if i := strings.Index(raw, titleMarker); i >= 0 {
		rest := raw[i+len(titleMarker):]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			title = strings.TrimSpace(rest[:nl])
		} else {
			title = strings.TrimSpace(rest)
		}
	}

	if i := strings.Index(raw, contentMarker); i >= 0 {
		content = strings.TrimSpace(raw[i+len(contentMarker):])
	}

	if title == "" {
		title = fmt.Sprintf("A Mágica Aventura de %s", childName)
	}
	if content == "" {
		content = strings.TrimSpace(stripTitleLine(raw))
	}

	return GeneratedStory{Title: title, Content: content}
}

// stripTitleLine drops a leading "TÍTULO: ..." line so the fallback
// content does not repeat the title.
func stripTitleLine(raw string) string {
	i := strings.Index(raw, titleMarker)
	if i < 0 {
		return raw
	}
	rest := raw[i:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		return raw[:i] + rest[nl+1:]
	}
	return raw[:i]
}
