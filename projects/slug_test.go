package projects_test

import (
	"testing"

	"github.com/goliatone/go-portfolio/projects"
)

func TestGenerateSlugTransliteratesDiacritics(t *testing.T) {
	cases := map[string]string{
		"Café São João":                "cafe-sao-joao",
		"Identidade visual Café":      "identidade-visual-cafe",
		"Redesign do aplicativo":      "redesign-do-aplicativo",
		"Hello, World!":               "hello-world",
		"A/B testing da página":       "ab-testing-da-pagina",
		"  Muitos   espaços  ":        "muitos-espacos",
		"Protótipo de navegação 2024": "prototipo-de-navegacao-2024",
	}

	for input, expected := range cases {
		got, err := projects.GenerateSlug(input)
		if err != nil {
			t.Fatalf("GenerateSlug(%q) error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("GenerateSlug(%q) = %q, want %q", input, got, expected)
		}
	}
}
