package render

import (
	"fmt"

	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/refdata"
)

// AIAnswer wraps a completion answer with ask-again follow-ups.
func AIAnswer(text string) Reply {
	return Reply{
		Text:     text,
		Markdown: true,
		Actions: [][]Action{
			{{Key: ActionAsk, Label: "❓ Ask Another"}},
			homeRow(),
		},
	}
}

// EcoTips wraps the eco tips content.
func EcoTips(text string) Reply {
	return Reply{
		Text:     "🌿 *Eco Tips* 🌿\n\n" + text,
		Markdown: true,
		Actions: [][]Action{
			{{Key: ActionTips, Label: "🔄 More Tips"}},
			homeRow(),
		},
	}
}

// WaterTips wraps the water conservation content.
func WaterTips(text string) Reply {
	return Reply{
		Text:     "💧 *Water-Saving Tips* 💧\n\n" + text,
		Markdown: true,
		Actions: [][]Action{
			{{Key: ActionWater, Label: "🔄 More Water Tips"}},
			homeRow(),
		},
	}
}

// Events wraps the disaster-events feed content.
func Events(text string) Reply {
	return Reply{
		Text:     "⚠️ *Natural Disaster Events* ⚠️\n\n" + text,
		Markdown: true,
		Actions: [][]Action{
			{{Key: ActionEvents, Label: "📅 More Events"}},
			homeRow(),
		},
	}
}

// DisasterGuide wraps a preparedness guide for one topic.
func DisasterGuide(topic refdata.Topic, text string) Reply {
	return Reply{
		Text:     fmt.Sprintf("⚠️ *%s Preparedness* ⚠️\n\n%s", topic.Title, text),
		Markdown: true,
		Actions: [][]Action{
			{{Key: ActionDisaster, Label: "⚠️ More Disaster Prep"}},
			homeRow(),
		},
	}
}

// LawCard renders one environmental law entry.
func LawCard(law refdata.Law) Reply {
	text := fmt.Sprintf(
		"📘 *%s*\n\n"+
			"📝 *Summary:* %s\n\n"+
			"📄 *Implementing Rules:* %s\n\n"+
			"💸 *Fine:* %s\n\n"+
			"🕒 *Imprisonment:* %s\n\n"+
			"🔗 [Read the full law](%s)",
		law.Title, law.Summary, law.IRR, law.Penalty, law.Imprisonment, law.Link,
	)
	return Reply{
		Text:     text,
		Markdown: true,
		Actions: [][]Action{
			{{Key: ActionLaws, Label: "📜 More Laws"}},
			homeRow(),
		},
	}
}
