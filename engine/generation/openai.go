package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mudler/xlog"
	"github.com/sashabaranov/go-openai"

	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

// OpenAIFormatter formats drafts through an OpenAI-compatible chat
// completion endpoint. One retry at a reduced timeout before giving up.
type OpenAIFormatter struct {
	client       *openai.Client
	model        string
	timeout      time.Duration
	retryTimeout time.Duration
}

func NewOpenAIFormatter(client *openai.Client, model string, timeout, retryTimeout time.Duration) *OpenAIFormatter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if retryTimeout <= 0 {
		retryTimeout = 3 * time.Second
	}
	return &OpenAIFormatter{client: client, model: model, timeout: timeout, retryTimeout: retryTimeout}
}

func (f *OpenAIFormatter) Format(ctx context.Context, draft types.DraftAnswer) (string, error) {
	prose, err := f.complete(ctx, draft, f.timeout)
	if err != nil {
		xlog.Warn("Formatter call failed, retrying once", "error", err)
		prose, err = f.complete(ctx, draft, f.retryTimeout)
		if err != nil {
			return "", fmt.Errorf("formatter failed after retry: %w", err)
		}
	}
	return prose, nil
}

func (f *OpenAIFormatter) complete(ctx context.Context, draft types.DraftAnswer, timeout time.Duration) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := f.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: f.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: formatterInstruction},
			{Role: openai.ChatMessageRoleUser, Content: buildFormatterInput(draft)},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from formatter")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

const formatterInstruction = `You rewrite structured answer drafts into fluent prose.

STRICT RULES:
1. Rephrase and connect the given statements only. NEVER add numbers, names, dates, or claims that are not in the input.
2. Keep every citation marker (like [doc-1]) attached to the statement it supports. Do not invent, drop, or renumber markers.
3. Do not express an opinion on whether the statements are true.
4. Output plain prose only, no headings or lists.`

func buildFormatterInput(draft types.DraftAnswer) string {
	var b strings.Builder
	b.WriteString("Statements:\n")
	for _, claim := range draft.Claims {
		b.WriteString("- ")
		b.WriteString(claim.Text)
		for _, id := range claim.CitationIDs {
			fmt.Fprintf(&b, " [%s]", id)
		}
		b.WriteString("\n")
	}
	if draft.Note != "" {
		fmt.Fprintf(&b, "\nConnective note: %s\n", draft.Note)
	}
	b.WriteString("\nAllowed citation markers:")
	for _, c := range draft.Citations {
		fmt.Fprintf(&b, " [%s]", c.ID)
	}
	b.WriteString("\n")
	return b.String()
}
