package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/pkg/utils"
)

const maxMessageLen = 4090

// FormatAnomalyAlertsForTelegram renders the alerts of one execution as Markdown, split into parts
// that fit the Telegram message limit.
func FormatAnomalyAlertsForTelegram(functionName string, executionID uint, alerts []entity.AnomalyAlert) []string {
	if len(alerts) == 0 {
		return nil
	}

	var messages []string
	var current strings.Builder
	part := 1

	startNewPart := func() {
		current.Reset()
		if part == 1 {
			current.WriteString(fmt.Sprintf("🚨 *Anomalias em %s* (execução #%d)\n\n", functionName, executionID))
		} else {
			current.WriteString(fmt.Sprintf("---*%s parte %d*---\n\n", functionName, part))
		}
	}
	startNewPart()

	for _, a := range alerts {
		var entry strings.Builder
		entry.WriteString(fmt.Sprintf("%s *%s* (%s)\n", severityIcon(a.Severity), a.AlertType, a.Severity))
		entry.WriteString(fmt.Sprintf("💬 %s\n", a.Message))
		if a.ExpectedValue != nil && a.ActualValue != nil {
			entry.WriteString(fmt.Sprintf("📊 %s: esperado %.2f, atual %.2f", a.MetricName, *a.ExpectedValue, *a.ActualValue))
			if a.DeviationPercent != nil {
				entry.WriteString(fmt.Sprintf(" (%+.2f%%)", *a.DeviationPercent))
			}
			entry.WriteString("\n")
		}
		entry.WriteString("\n")

		s := entry.String()
		if current.Len()+len(s) > maxMessageLen {
			messages = append(messages, current.String())
			part++
			startNewPart()
		}
		current.WriteString(s)
	}

	return append(messages, current.String())
}

func severityIcon(s entity.Severity) string {
	switch s {
	case entity.SeverityCritical:
		return "🔴"
	case entity.SeverityWarning:
		return "🟠"
	default:
		return "🔵"
	}
}

// FormatErrorAlertMessage formats an operational error for the alert chat.
func FormatErrorAlertMessage(time time.Time, errType string, errMsg string, data string) string {
	return fmt.Sprintf(`📛 [ERROR ALERT]
%s
🔧 %s
⚠️ %s

📄 Data: %s
`, utils.PrettyDate(time), errType, errMsg, data)
}
