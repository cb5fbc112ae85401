package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"garmin-trainer/internal/analysis"
	"garmin-trainer/internal/store"
)

// ErrNotConfigured is returned when no API key is set
var ErrNotConfigured = errors.New("advisor not configured")

const systemPrompt = `You are a training advisor for an endurance athlete. You receive a daily readiness assessment computed from the athlete's heart rate variability, sleep, and training load history. Write a short narrative (3-5 sentences) that explains today's readiness in plain language and gives one concrete suggestion for today's training. Do not repeat the raw numbers verbatim; interpret them. Be direct and encouraging, never alarmist.`

// Advisor generates readiness narratives with an LLM, caching them per day
type Advisor struct {
	client  openai.Client
	store   *store.DB
	model   string
	logger  *slog.Logger
	enabled bool
}

// New creates an advisor. An empty API key yields a disabled advisor whose
// Narrative always returns ErrNotConfigured.
func New(apiKey, model string, db *store.DB, logger *slog.Logger) *Advisor {
	if logger == nil {
		logger = slog.Default()
	}
	if model == "" {
		model = openai.ChatModelGPT4o
	}

	a := &Advisor{
		store:  db,
		model:  model,
		logger: logger,
	}
	if apiKey != "" {
		a.client = openai.NewClient(option.WithAPIKey(apiKey))
		a.enabled = true
	}
	return a
}

// Enabled reports whether an API key is configured
func (a *Advisor) Enabled() bool {
	return a.enabled
}

// Narrative returns the readiness narrative for a day, generating and
// caching it on first request. Failures here never affect the readiness
// score itself; callers show the score without a narrative.
func (a *Advisor) Narrative(ctx context.Context, date time.Time, readiness *analysis.ReadinessResult, load *analysis.LoadState) (string, error) {
	if !a.enabled {
		return "", ErrNotConfigured
	}

	if cached, err := a.store.GetAdvice(date); err == nil {
		return cached.Narrative, nil
	} else if !errors.Is(err, store.ErrNoAdvice) {
		a.logger.Warn("reading cached advice", "error", err)
	}

	prompt := buildPrompt(date, readiness, load)

	a.logger.Debug("requesting readiness narrative", "model", a.model, "date", date.Format("2006-01-02"))

	completion, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: a.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		a.logger.Error("chat completion failed", "error", err)
		return "", fmt.Errorf("generating narrative: %w", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", errors.New("empty completion response")
	}
	narrative := strings.TrimSpace(completion.Choices[0].Message.Content)

	if err := a.store.SaveAdvice(&store.Advice{
		Date:      date,
		Narrative: narrative,
		Model:     a.model,
	}); err != nil {
		a.logger.Warn("caching advice", "error", err)
	}

	return narrative, nil
}

// buildPrompt renders the readiness assessment as context for the model
func buildPrompt(date time.Time, readiness *analysis.ReadinessResult, load *analysis.LoadState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Date: %s\n", date.Format("Monday, January 2"))
	fmt.Fprintf(&b, "Readiness score: %d/100 (%s)\n", readiness.Score, readiness.Level)
	fmt.Fprintf(&b, "Recommendation bucket: %s\n", readiness.Recommendation)

	if readiness.HRVZScore != nil {
		fmt.Fprintf(&b, "HRV z-score vs baseline: %.2f\n", *readiness.HRVZScore)
	}
	if readiness.SleepScore != nil {
		fmt.Fprintf(&b, "Sleep factor: %.0f/100\n", *readiness.SleepScore)
	}

	fmt.Fprintf(&b, "Acute load (7d avg): %.1f\n", load.AcuteLoad)
	fmt.Fprintf(&b, "Chronic load (28d avg): %.1f\n", load.ChronicLoad)
	if load.ACWR != nil {
		fmt.Fprintf(&b, "Acute:chronic ratio: %.2f (%s)\n", *load.ACWR, load.Status)
	}
	fmt.Fprintf(&b, "Form (fitness - fatigue): %.1f\n", load.Form)

	if len(readiness.KeyFactors) > 0 {
		fmt.Fprintf(&b, "Key factors: %s\n", strings.Join(readiness.KeyFactors, "; "))
	}
	if len(readiness.RedFlags) > 0 {
		fmt.Fprintf(&b, "Red flags: %s\n", strings.Join(readiness.RedFlags, "; "))
	}

	return b.String()
}
