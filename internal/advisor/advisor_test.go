package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"garmin-trainer/internal/analysis"
	"garmin-trainer/internal/store"
)

func floatPtr(f float64) *float64 { return &f }

func testReadiness() (*analysis.ReadinessResult, *analysis.LoadState) {
	acwr := 1.1
	readiness := &analysis.ReadinessResult{
		Score:          78,
		Level:          analysis.LevelGood,
		Recommendation: analysis.RecommendHighIntensity,
		HRVZScore:      floatPtr(0.4),
		SleepScore:     floatPtr(88),
		KeyFactors:     []string{"HRV near baseline"},
	}
	load := &analysis.LoadState{
		AcuteLoad:   88,
		ChronicLoad: 80,
		ACWR:        &acwr,
		Status:      analysis.ACWROptimal,
		Form:        12.5,
	}
	return readiness, load
}

func TestNarrativeNotConfigured(t *testing.T) {
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error = %v", err)
	}
	defer db.Close()

	a := New("", "", db, nil)
	if a.Enabled() {
		t.Error("Enabled() = true without API key")
	}

	readiness, load := testReadiness()
	_, err = a.Narrative(context.Background(), time.Now(), readiness, load)
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Narrative() error = %v, want ErrNotConfigured", err)
	}
}

func TestNarrativeUsesCache(t *testing.T) {
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error = %v", err)
	}
	defer db.Close()

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	if err := db.SaveAdvice(&store.Advice{Date: day, Narrative: "Cached narrative.", Model: "gpt-4o"}); err != nil {
		t.Fatalf("SaveAdvice() error = %v", err)
	}

	// The cache hit returns before any API call, so a fake key is fine
	a := New("test-key", "gpt-4o", db, nil)
	readiness, load := testReadiness()

	got, err := a.Narrative(context.Background(), day, readiness, load)
	if err != nil {
		t.Fatalf("Narrative() error = %v", err)
	}
	if got != "Cached narrative." {
		t.Errorf("Narrative() = %q, want cached text", got)
	}
}

func TestBuildPrompt(t *testing.T) {
	readiness, load := testReadiness()
	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	prompt := buildPrompt(day, readiness, load)

	for _, want := range []string{
		"78/100",
		"HRV z-score",
		"0.40",
		"Acute load (7d avg): 88.0",
		"Acute:chronic ratio: 1.10",
		"HRV near baseline",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptMissingFactors(t *testing.T) {
	readiness := &analysis.ReadinessResult{
		Score:          50,
		Level:          analysis.LevelModerate,
		Recommendation: analysis.RecommendEasy,
	}
	load := &analysis.LoadState{Status: analysis.ACWRUnknown}

	prompt := buildPrompt(time.Now(), readiness, load)

	if strings.Contains(prompt, "z-score") {
		t.Error("prompt should omit HRV line when z-score is nil")
	}
	if strings.Contains(prompt, "ratio") {
		t.Error("prompt should omit ACWR line when nil")
	}
}
