package backend

import (
	"context"
	"net/http"
	"strings"

	"github.com/mustafa-app/console/internal/domain"
)

// Ask submits a natural-language question about field activity and returns
// the AI-generated answer.
func (c *Client) Ask(ctx context.Context, question domain.Question) (*domain.Answer, error) {
	const op = "backend.Ask"

	if strings.TrimSpace(question.Question) == "" {
		return nil, domain.Invalid(op, "A question is required")
	}

	var answer domain.Answer
	if err := c.postJSON(ctx, op, "/insights/ask", question, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

// KPIs returns the dashboard aggregates: today's photo count, active
// promoters today, the monthly total and the promoter ranking.
func (c *Client) KPIs(ctx context.Context) (*domain.KPIs, error) {
	const op = "backend.KPIs"

	var kpis domain.KPIs
	if err := c.doJSON(ctx, op, http.MethodGet, "/insights/kpis", nil, nil, "", &kpis); err != nil {
		return nil, err
	}
	return &kpis, nil
}
