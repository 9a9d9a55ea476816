package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
)

// DescriptionGenerator turns a prompt into marketing copy.
type DescriptionGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type DescribeTournamentInput struct {
	TournamentName      string  `json:"tournamentName"`
	TournamentType      string  `json:"tournamentType"`
	TournamentLocation  string  `json:"tournamentLocation"`
	TournamentStartDate string  `json:"tournamentStartDate"`
	TournamentEndDate   string  `json:"tournamentEndDate"`
	EntryFee            float64 `json:"entryFee"`
	PrizeFund           float64 `json:"prizeFund"`
	TimeControl         string  `json:"timeControl"`
}

type DescriptionService interface {
	Describe(ctx context.Context, input DescribeTournamentInput) (string, error)
}

var descriptionPrompt = template.Must(template.New("describe").Parse(
	`You are an expert in writing engaging and informative descriptions for chess tournaments.

Using the information provided below, generate a compelling description to attract more players.

Tournament Name: {{.TournamentName}}
Tournament Type: {{.TournamentType}}
Location: {{.TournamentLocation}}
Start Date: {{.TournamentStartDate}}
End Date: {{.TournamentEndDate}}
Entry Fee: {{.EntryFee}}
Prize Fund: {{.PrizeFund}}
Time Control: {{.TimeControl}}
`))

type descriptionService struct {
	generator DescriptionGenerator
}

// NewDescriptionService accepts a nil generator; Describe then reports
// ErrGeneratorUnavailable.
func NewDescriptionService(generator DescriptionGenerator) DescriptionService {
	return &descriptionService{generator: generator}
}

func (s *descriptionService) Describe(ctx context.Context, input DescribeTournamentInput) (string, error) {
	if s.generator == nil {
		return "", ErrGeneratorUnavailable
	}
	if strings.TrimSpace(input.TournamentName) == "" || strings.TrimSpace(input.TournamentType) == "" {
		return "", ErrDescriptionIncomplete
	}

	var prompt bytes.Buffer
	if err := descriptionPrompt.Execute(&prompt, input); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}

	text, err := s.generator.Generate(ctx, prompt.String())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneratorUnavailable, err)
	}
	return strings.TrimSpace(text), nil
}
