package report

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"tg-media-bot/internal/domain"
)

const header = "An exception was raised while handling an update"

// BuildMessage собирает HTML-сообщение отчёта: сериализованное событие,
// состояние чата, состояние пользователя и стектрейс, каждый блок
// экранирован и обёрнут в <pre>.
func BuildMessage(ev domain.InboundEvent, aux domain.AuxState, failure error) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString("<pre>update = ")
	b.WriteString(html.EscapeString(formatEvent(ev)))
	b.WriteString("</pre>\n\n")
	b.WriteString("<pre>chat_data = ")
	b.WriteString(html.EscapeString(formatAux(aux.Chat)))
	b.WriteString("</pre>\n\n")
	b.WriteString("<pre>user_data = ")
	b.WriteString(html.EscapeString(formatAux(aux.User)))
	b.WriteString("</pre>\n\n")
	b.WriteString("<pre>")
	b.WriteString(html.EscapeString(formatTrace(failure)))
	b.WriteString("</pre>")
	return b.String()
}

func formatEvent(ev domain.InboundEvent) string {
	payload, err := json.MarshalIndent(ev, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", ev)
	}
	return string(payload)
}

func formatAux(data map[string]any) string {
	if len(data) == 0 {
		return "{}"
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(payload)
}

// formatTrace печатает ошибку вместе со стеком, если обёртка его несёт.
func formatTrace(failure error) string {
	if failure == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%+v", failure)
}
