// Package explain produces the narrative layer of a scan: why the computed
// risk level applies and what the user should do about it.
//
// LLM is the model-backed implementation; Static is the deterministic text
// used when no model is configured. Fallback composes the two.
package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/watchdog/watchdog/internal/core"
	"github.com/watchdog/watchdog/internal/ctxlog"
)

// ErrNoJSON is returned when a model reply contains no JSON object.
var ErrNoJSON = errors.New("explain: response did not contain a JSON object")

// StaticModel names the explanation source when no model was involved.
const StaticModel = "WatchDog AI Engine"

// DefaultExplanation is the static explanation text.
const DefaultExplanation = "Your digital footprint was analyzed using OSINT and risk heuristics."

// DefaultRecommendations are returned when no model produced any.
var DefaultRecommendations = []string{
	"Enable two-factor authentication",
	"Avoid reusing usernames across platforms",
	"Monitor for unusual account activity",
}

// Static always returns the default explanation.
type Static struct{}

var _ core.Explainer = Static{}

func (Static) Explain(ctx context.Context, in core.ExplainInput) (core.Explanation, error) {
	recs := make([]string, len(DefaultRecommendations))
	copy(recs, DefaultRecommendations)
	return core.Explanation{
		Explanation:     DefaultExplanation,
		Recommendations: recs,
		Model:           StaticModel,
	}, nil
}

// LLM asks a chat model for the explanation.
type LLM struct {
	Client core.LLMClient
	Model  string
}

var _ core.Explainer = (*LLM)(nil)

func (l *LLM) Explain(ctx context.Context, in core.ExplainInput) (core.Explanation, error) {
	reply, err := l.Client.ChatCompletion(ctx, Messages(in))
	if err != nil {
		return core.Explanation{}, fmt.Errorf("explain: %w", err)
	}
	out, err := ParseReply(reply)
	if err != nil {
		return core.Explanation{}, err
	}
	out.Model = l.Model
	return out, nil
}

// ParseReply extracts the text between the first '{' and the last '}' and decodes it.
func ParseReply(reply string) (core.Explanation, error) {
	start := strings.IndexByte(reply, '{')
	end := strings.LastIndexByte(reply, '}')
	if start == -1 || end == -1 || end < start {
		return core.Explanation{}, ErrNoJSON
	}
	var out core.Explanation
	if err := json.Unmarshal([]byte(reply[start:end+1]), &out); err != nil {
		return core.Explanation{}, fmt.Errorf("explain: decode reply: %w", err)
	}
	if strings.TrimSpace(out.Explanation) == "" {
		return core.Explanation{}, fmt.Errorf("explain: reply has no explanation")
	}
	return out, nil
}

// Fallback tries Primary and uses Secondary when it fails. Missing
// recommendations in a successful primary reply are filled from Secondary.
type Fallback struct {
	Primary   core.Explainer
	Secondary core.Explainer
}

var _ core.Explainer = (*Fallback)(nil)

func (f *Fallback) Explain(ctx context.Context, in core.ExplainInput) (core.Explanation, error) {
	if f.Primary != nil {
		out, err := f.Primary.Explain(ctx, in)
		if err == nil {
			if len(out.Recommendations) == 0 {
				if sec, secErr := f.Secondary.Explain(ctx, in); secErr == nil {
					out.Recommendations = sec.Recommendations
				}
			}
			return out, nil
		}
		ctxlog.FromContext(ctx).Warn("explainer failed, using fallback", "component", "explain", "error", err)
	}
	return f.Secondary.Explain(ctx, in)
}
