package reply

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"mailtriage/internal/ai"
	"mailtriage/internal/model"
)

// Static replies used when the external model cannot be reached. One per
// category, so a degraded service still answers in context.
const (
	fallbackProductive   = "Olá! Recebemos sua solicitação e retornaremos em breve com a atualização."
	fallbackUnproductive = "Olá! Agradecemos sua mensagem. Nenhuma ação é necessária."
)

const systemPrompt = "Você é um assistente profissional de atendimento ao cliente de uma empresa do setor financeiro. " +
	"Responda sempre em português do Brasil, de forma cordial e objetiva. " +
	"Escreva apenas o texto do e-mail de resposta, sem assunto, preâmbulos ou explicações."

// ChatCompleter is the slice of the LLM client the generator needs. Narrow on
// purpose so tests can substitute a double without network access.
type ChatCompleter interface {
	Complete(ctx context.Context, cfg ai.ChatConfig, messages []ai.ChatMessage) (string, error)
}

// Generator produces the auto-reply for a classified email by calling an
// external OpenAI-compatible service, falling back to a static category
// reply on any failure.
type Generator struct {
	client  ChatCompleter
	cfg     ai.ChatConfig
	timeout time.Duration
}

func NewGenerator(client ChatCompleter, cfg ai.ChatConfig, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Generator{client: client, cfg: cfg, timeout: timeout}
}

// result keeps generation failure visible inside the package. The public
// boundary collapses it into a plain reply via the fallback mapping, so the
// caller never observes a generator error.
type result struct {
	text string
	err  error
}

// Generate returns the reply text for the given category and email content.
// Never returns an empty string: external-call failures (network, timeout,
// malformed response) are logged and masked by the category fallback.
func (g *Generator) Generate(ctx context.Context, category model.Category, content string) string {
	res := g.complete(ctx, category, content)
	if res.err != nil {
		log.Printf("reply generation failed, using fallback: %v", res.err)
		return Fallback(category)
	}
	return res.text
}

func (g *Generator) complete(ctx context.Context, category model.Category, content string) result {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	messages := []ai.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt(category, content)},
	}
	out, err := g.client.Complete(ctx, g.cfg, messages)
	if err != nil {
		return result{err: err}
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return result{err: errors.New("model returned an empty reply")}
	}
	return result{text: out}
}

// Fallback returns the static reply for a category.
func Fallback(category model.Category) string {
	if category == model.CategoryProductive {
		return fallbackProductive
	}
	return fallbackUnproductive
}

func userPrompt(category model.Category, content string) string {
	var rules string
	if category == model.CategoryProductive {
		rules = "O e-mail abaixo foi classificado como Produtivo: ele exige uma ação ou resposta. " +
			"Escreva uma resposta clara, em 3 a 6 frases, informando os próximos passos e, " +
			"se necessário, solicitando as informações que estiverem faltando."
	} else {
		rules = "O e-mail abaixo foi classificado como Improdutivo: ele não exige nenhuma ação. " +
			"Escreva uma resposta cordial, em 2 a 4 frases, agradecendo a mensagem e deixando " +
			"explícito que nenhuma ação adicional é necessária."
	}
	return fmt.Sprintf("%s\n\nE-mail recebido:\n%s", rules, content)
}
