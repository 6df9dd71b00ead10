package cli

import (
	"context"
	"fmt"
	"strings"

	dto "github.com/prometheus/client_model/go"
)

// Stats prints the request counters gathered by the API client during this
// run.
func (a *App) Stats(ctx context.Context) error {
	families, err := a.api.Metrics().Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	a.heading("API requests this session")
	lines := 0
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				fmt.Fprintf(a.out, "  %-10s %6.0f\n", labels(m), m.GetCounter().GetValue())
				lines++
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				if h.GetSampleCount() == 0 {
					continue
				}
				avg := h.GetSampleSum() / float64(h.GetSampleCount())
				fmt.Fprintf(a.out, "  %-10s avg %.3fs over %d\n", labels(m), avg, h.GetSampleCount())
				lines++
			}
		}
	}
	if lines == 0 {
		a.info("No requests yet.")
	}
	return nil
}

func labels(m *dto.Metric) string {
	pairs := make([]string, 0, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		pairs = append(pairs, lp.GetValue())
	}
	return strings.Join(pairs, " ")
}
