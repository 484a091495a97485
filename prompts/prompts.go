package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*
var templatesFS embed.FS

const fallbackLang = "en"

// RenderMapPrompt renders the prompt that condenses one chunk of a document.
func RenderMapPrompt(lang, chunk string) (systemPrompt, userPrompt string, err error) {
	return render(lang, "map", struct{ Chunk string }{Chunk: chunk})
}

// RenderReducePrompt renders the prompt that turns chunk summaries into the
// structured JSON summary.
func RenderReducePrompt(lang, combined string) (systemPrompt, userPrompt string, err error) {
	return render(lang, "reduce", struct{ Combined string }{Combined: combined})
}

// RenderQAPrompt renders the prompt answering a question from retrieved context.
func RenderQAPrompt(lang, context, question string) (systemPrompt, userPrompt string, err error) {
	return render(lang, "qa", struct {
		Context  string
		Question string
	}{Context: context, Question: question})
}

func render(lang, name string, data any) (string, string, error) {
	if _, err := templatesFS.ReadDir("templates/" + lang); err != nil {
		lang = fallbackLang
	}

	systemPrompt, err := execute(fmt.Sprintf("templates/%s/%s_system.md", lang, name), data)
	if err != nil {
		return "", "", err
	}

	userPrompt, err := execute(fmt.Sprintf("templates/%s/%s_user.md", lang, name), data)
	if err != nil {
		return "", "", err
	}

	return systemPrompt, userPrompt, nil
}

func execute(path string, data any) (string, error) {
	content, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(path).Parse(string(content))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
