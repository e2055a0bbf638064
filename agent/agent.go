// Package agent provides the conversational assistant behind the assist
// command. It grounds a Gemini chat session in the user's rendered portfolio
// reports so answers refer to actual positions, not generic advice.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

const systemPrompt = `
You are a portfolio assistant. The user's current holdings and portfolio
value history are provided below in markdown. Answer questions about them
precisely, citing figures from the reports. When asked about something the
reports do not contain, say so instead of guessing. Never give buy or sell
recommendations.
`

// Assistant is one chat session grounded in the portfolio reports.
type Assistant struct {
	w    io.Writer
	r    *bufio.Reader
	chat *genai.Chat
}

// New creates an assistant writing to w and reading user input from r.
func New(w io.Writer, r io.Reader) *Assistant {
	return &Assistant{w: w, r: bufio.NewReader(r)}
}

// Start opens the chat session, seeding it with the rendered reports.
func (a *Assistant) Start(ctx context.Context, client *genai.Client, reports ...string) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{
			{Text: systemPrompt + "\n\n" + strings.Join(reports, "\n\n")},
		}},
	}
	chat, err := client.Chats.Create(ctx, model, config, nil)
	if err != nil {
		return fmt.Errorf("cannot open assistant session: %w", err)
	}
	a.chat = chat
	return nil
}

// Ask sends one question and returns the assistant's answer.
func (a *Assistant) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from assistant")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

const prompt = "assist> "

// Run drives the interactive session. Initial prompts are consumed before
// reading from the user; "bye" or EOF ends the session cleanly.
func (a *Assistant) Run(ctx context.Context, prompts ...string) error {
	fmt.Fprintln(a.w, "Portfolio assistant. Type 'bye' to exit.")
	for {
		fmt.Fprint(a.w, prompt)

		var input string
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := a.Ask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, answer)
	}
}
