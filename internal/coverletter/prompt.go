package coverletter

import (
	"strings"

	_ "embed"
)

//go:embed prompt.md
var promptTemplate string

// BuildPrompt renders the generation instruction for the given request.
// The same request always produces the same prompt. Validation happens
// before this point; BuildPrompt itself never fails.
func BuildPrompt(req Request) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "회사명: {{COMPANY}}\n지원 직무: {{POSITION}}\n{{KEYWORDS_LINE}}\nJSON 형식으로 motivation, growth, vision을 반환하세요."
	}

	keywordsLine := ""
	if keywords := strings.TrimSpace(req.Keywords); keywords != "" {
		keywordsLine = "키워드: " + keywords
	}

	prompt := strings.ReplaceAll(template, "{{COMPANY}}", strings.TrimSpace(req.Company))
	prompt = strings.ReplaceAll(prompt, "{{POSITION}}", strings.TrimSpace(req.Position))
	prompt = strings.ReplaceAll(prompt, "{{KEYWORDS_LINE}}", keywordsLine)

	return prompt
}
