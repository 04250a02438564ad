package notifier

import (
	"fmt"
	"strings"
	"time"

	"hotkeytrader/internal/trading"
)

const maxStructuredMessageLen = 3800

// MessageSection is one titled block of a push message.
type MessageSection struct {
	Title string
	Lines []string
}

// StructuredMessage is the common layout for Telegram pushes.
type StructuredMessage struct {
	Icon      string
	Title     string
	Sections  []MessageSection
	Footer    string
	Timestamp time.Time
}

// RenderMarkdown renders the message and trims it to the Telegram limit.
func (m StructuredMessage) RenderMarkdown() string {
	var b strings.Builder
	header := strings.TrimSpace(m.Icon + " " + m.Title)
	if header != "" {
		b.WriteString(header + "\n\n")
	}
	if block := renderSections(m.Sections); block != "" {
		b.WriteString(block)
	}
	if footer := strings.TrimSpace(m.Footer); footer != "" {
		b.WriteString(sanitize(footer))
		b.WriteString("\n")
	}
	if !m.Timestamp.IsZero() {
		b.WriteString("time: " + m.Timestamp.Format("2006-01-02 15:04:05 MST"))
	}
	body := strings.TrimSpace(b.String())
	if len(body) > maxStructuredMessageLen {
		body = body[:maxStructuredMessageLen] + "..."
	}
	return body
}

func renderSections(secs []MessageSection) string {
	hasContent := false
	for _, sec := range secs {
		if len(sanitizeLines(sec.Lines)) > 0 {
			hasContent = true
			break
		}
	}
	if !hasContent {
		return ""
	}
	var b strings.Builder
	b.WriteString("```\n")
	for idx, sec := range secs {
		lines := sanitizeLines(sec.Lines)
		if len(lines) == 0 {
			continue
		}
		if title := strings.TrimSpace(sec.Title); title != "" {
			b.WriteString(sanitize(title))
			b.WriteString("\n")
		}
		for _, line := range lines {
			b.WriteString("- ")
			b.WriteString(sanitize(line))
			b.WriteString("\n")
		}
		if idx != len(secs)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("```\n\n")
	return b.String()
}

func sanitizeLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if text := strings.TrimSpace(line); text != "" {
			out = append(out, text)
		}
	}
	return out
}

func sanitize(s string) string {
	return strings.ReplaceAll(s, "```", "'''")
}

// outcomeMessage lays an outcome out for a push notification.
func outcomeMessage(out trading.Outcome, now time.Time) StructuredMessage {
	msg := StructuredMessage{
		Title:     strings.ReplaceAll(string(out.Action), "_", " "),
		Footer:    out.Message,
		Timestamp: now,
	}
	switch out.Status {
	case trading.StatusSucceeded:
		msg.Icon = iconSuccess
	case trading.StatusSkipped:
		msg.Icon = iconWarning
	default:
		msg.Icon = iconFailure
	}

	if out.Intent != nil {
		msg.Sections = append(msg.Sections, MessageSection{
			Title: "Order",
			Lines: []string{fmt.Sprintf("%s %v", out.Intent.Side, out.Intent.Quantity)},
		})
	}
	if out.Entry != nil || out.Protection != nil {
		sec := MessageSection{Title: "Prices"}
		if out.Entry != nil {
			line := fmt.Sprintf("entry %v", out.Entry.Price)
			if out.Entry.Fallback {
				line += " (mark price)"
			}
			sec.Lines = append(sec.Lines, line)
		}
		if p := out.Protection; p != nil {
			sec.Lines = append(sec.Lines, fmt.Sprintf("stop-loss %v", p.StopLoss))
			if p.HasTakeProfit {
				sec.Lines = append(sec.Lines, fmt.Sprintf("take-profit %v", p.TakeProfit))
			}
		}
		msg.Sections = append(msg.Sections, sec)
	}
	if len(out.Orders) > 0 {
		sec := MessageSection{Title: "Orders"}
		for _, o := range out.Orders {
			sec.Lines = append(sec.Lines, fmt.Sprintf("#%d %s %s", o.OrderID, o.Type, o.Side))
		}
		msg.Sections = append(msg.Sections, sec)
	}
	if out.Kind != "" && out.Failed() {
		msg.Sections = append(msg.Sections, MessageSection{Title: "Error", Lines: []string{string(out.Kind)}})
	}
	return msg
}
