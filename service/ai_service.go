package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"

	"github.com/Galaktikon/better-loanz-fintech-capstone/domain"
)

const openAIChatURL = "https://api.openai.com/v1/chat/completions"

// AIService answers free-form questions about a user's loan portfolio via
// the OpenAI chat completions API. Without an API key (or on any upstream
// error) it degrades to a deterministic summary instead of failing.
type AIService struct {
	apiKey     string
	apiURL     string
	enabled    bool
	httpClient *http.Client
}

type openAIRequest struct {
	Model     string          `json:"model"`
	Messages  []openAIMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		apiKey:  apiKey,
		apiURL:  openAIChatURL,
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GenerateLoanAdvice answers a question in the context of the user's
// normalized loans.
func (s *AIService) GenerateLoanAdvice(ctx context.Context, question string, loans []domain.Loan) string {
	if !s.enabled {
		return s.fallbackAdvice(question, loans)
	}

	prompt := fmt.Sprintf(`The user is tracking the following personal loans:

%s
QUESTION: %s

Answer in 3-4 sentences. Be specific about the user's own numbers, explain
the tradeoff between paying extra toward principal and keeping cash on
hand, and stay realistic about how long payoff takes.`,
		formatPortfolio(loans), question)

	advice, err := s.callLLM(ctx, prompt)
	if err != nil {
		log.Warn("AI advice request failed, using fallback", "error", err)
		return s.fallbackAdvice(question, loans)
	}
	return advice
}

func (s *AIService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := openAIRequest{
		Model: "gpt-4o-mini",
		Messages: []openAIMessage{
			{
				Role:    "system",
				Content: "You are a personal-finance advisor specializing in consumer debt: student loans, mortgages and credit cards. You give clear, concrete, non-judgmental guidance grounded in the loan figures you are shown. You never invent balances or rates that were not provided.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}
	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}
	return openAIResp.Choices[0].Message.Content, nil
}

func formatPortfolio(loans []domain.Loan) string {
	if len(loans) == 0 {
		return "(no loans on file)\n"
	}
	var b strings.Builder
	total := 0.0
	for _, loan := range loans {
		apr := "unknown APR"
		if loan.APR != nil {
			apr = fmt.Sprintf("%.2f%% APR", *loan.APR)
		}
		fmt.Fprintf(&b, "- %s (%s): $%.2f balance, %s, last payment $%.2f, next due %s\n",
			loan.Title, loan.Category, loan.Balance, apr, loan.Payment, loan.EndDate)
		total += loan.Balance
	}
	fmt.Fprintf(&b, "TOTAL DEBT: $%.2f across %d loans\n", total, len(loans))
	return b.String()
}

// fallbackAdvice is the deterministic answer used when the AI integration
// is disabled or unavailable.
func (s *AIService) fallbackAdvice(question string, loans []domain.Loan) string {
	if len(loans) == 0 {
		return "You have no loans on file yet. Link an account and sync your liabilities to get personalized advice."
	}

	total := 0.0
	var costliest *domain.Loan
	for i := range loans {
		total += loans[i].Balance
		if loans[i].APR == nil {
			continue
		}
		if costliest == nil || *loans[i].APR > *costliest.APR {
			costliest = &loans[i]
		}
	}

	advice := fmt.Sprintf("You currently owe $%.2f across %d loans.", total, len(loans))
	if costliest != nil {
		advice += fmt.Sprintf(" Your most expensive debt is %s at %.2f%% APR; putting any extra payment there first saves the most interest.",
			costliest.Title, *costliest.APR)
	}
	advice += " Keep making at least the scheduled payment on every loan to avoid growing balances."
	return advice
}
