package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thesumanshah/tfnsw-assistant/pkg/chat"
)

var (
	userLabel      = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	assistantLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	bubbleStyle    = lipgloss.NewStyle().PaddingLeft(2)
	quickestStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	offlineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
)

const quickestTag = "⚡ QUICKEST"

var actionLabels = map[chat.Action]string{
	chat.ActionSwap:  "🔄 Swap direction",
	chat.ActionMap:   "🗺️ Show on map",
	chat.ActionAlert: "🔔 Toggle favourite alert",
}

// RenderMessage formats one conversation entry for the terminal.
func RenderMessage(m chat.Message) string {
	if m.Content == "" {
		return ""
	}

	label := assistantLabel.Render("Assistant")
	if m.Role == chat.RoleUser {
		label = userLabel.Render("You")
	}

	content := m.Content
	if m.Journey != nil {
		content = strings.Replace(content, quickestTag, quickestStyle.Render(quickestTag), 1)
		if m.Journey.Offline {
			label += " " + offlineStyle.Render("(offline)")
		}
	}

	return fmt.Sprintf("%s\n%s\n", label, bubbleStyle.Render(content))
}

// RenderTranscript formats a whole conversation.
func RenderTranscript(messages []chat.Message) string {
	var parts []string
	for _, m := range messages {
		if rendered := RenderMessage(m); rendered != "" {
			parts = append(parts, rendered)
		}
	}
	return strings.Join(parts, "\n")
}

func actionLabel(a chat.Action) string {
	if label, ok := actionLabels[a]; ok {
		return label
	}
	return string(a)
}

func accentPrintln(s string) {
	fmt.Println(accentStyle.Render(s))
}
