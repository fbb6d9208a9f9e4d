package tutorial

import (
	"strconv"
	"strings"
)

// PanelID names one of the collapsible advanced-feature panels.
type PanelID string

const (
	PanelNotifications PanelID = "notifications"
	PanelAutomation    PanelID = "automation"
	PanelTips          PanelID = "tips"
)

// Panel is an advanced-feature explanation block. Items may contain
// markdown emphasis.
type Panel struct {
	ID      PanelID
	Icon    string
	Title   string
	Intro   string
	Items   []string
	Ordered bool // Render items as a numbered list
}

// Markdown returns the panel body as a markdown document.
func (p Panel) Markdown() string {
	var b strings.Builder
	if p.Intro != "" {
		b.WriteString(p.Intro)
		b.WriteString("\n\n")
	}
	for i, item := range p.Items {
		if p.Ordered {
			b.WriteString(strconv.Itoa(i+1) + ". ")
		} else {
			b.WriteString("- ")
		}
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}

func panelList() []Panel {
	return []Panel{
		{
			ID:      PanelNotifications,
			Icon:    "✉",
			Title:   "Email Notifications",
			Intro:   "Set up automatic email alerts:",
			Ordered: true,
			Items: []string{
				"Go to **Tools → Notification Rules**",
				`Click **"Add notification rule"**`,
				`Select **"Any changes are made"**`,
				`Choose frequency: **"Right away"**`,
				"Enter your email address",
				`Click **"Save"**`,
			},
		},
		{
			ID:      PanelAutomation,
			Icon:    "▶",
			Title:   "Automatic Updates",
			Intro:   "Set up automatic price updates:",
			Ordered: true,
			Items: []string{
				"Go to **Extensions → Apps Script**",
				"Delete default code and paste the automation script",
				"Save and authorize the script",
				"Set up time-based trigger for hourly updates",
				"Prices will update automatically!",
			},
		},
		{
			ID:    PanelTips,
			Icon:  "⚠",
			Title: "Pro Tips",
			Items: []string{
				"**Use data validation** to ensure consistent supplier names",
				"**Add conditional formatting** to highlight price alerts",
				"**Create a separate history sheet** to track price changes over time",
				"**Use IMPORTXML cautiously** - some sites block automated requests",
				"**Share with your team** for collaborative monitoring",
				"**Mobile app** lets you check prices on the go",
			},
		},
	}
}

// Panels returns the advanced-feature panels in display order.
func Panels() []Panel {
	return panelList()
}

// PanelIDs returns the panel identifiers in display order.
func PanelIDs() []PanelID {
	ps := panelList()
	ids := make([]PanelID, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}
