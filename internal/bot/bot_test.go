package bot

import (
	"testing"

	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/render"
)

func TestMarkupForBuildsRows(t *testing.T) {
	reply := render.MainMenu()
	markup := markupFor(reply)
	if markup == nil {
		t.Fatal("expected markup for menu reply")
	}
	if len(markup.InlineKeyboard) != len(reply.Actions) {
		t.Fatalf("rows = %d, want %d", len(markup.InlineKeyboard), len(reply.Actions))
	}
	for i, row := range markup.InlineKeyboard {
		if len(row) != len(reply.Actions[i]) {
			t.Fatalf("row %d has %d buttons, want %d", i, len(row), len(reply.Actions[i]))
		}
	}
}

func TestMarkupForEmptyActions(t *testing.T) {
	if markupFor(render.Reply{Text: "plain"}) != nil {
		t.Fatal("expected nil markup when reply has no actions")
	}
}

func TestMenuActionKeysCoverMenus(t *testing.T) {
	keys := make(map[string]struct{})
	for _, k := range menuActionKeys() {
		if _, dup := keys[k]; dup {
			t.Fatalf("duplicate callback key %q", k)
		}
		keys[k] = struct{}{}
	}

	replies := []render.Reply{
		render.MainMenu(),
		render.DisasterMenu(),
		render.LawsMenu(),
		render.About(),
	}
	for _, reply := range replies {
		for _, row := range reply.Actions {
			for _, a := range row {
				if _, ok := keys[a.Key]; !ok {
					t.Errorf("menu action %q has no registered callback", a.Key)
				}
			}
		}
	}
}

func TestLookupAction(t *testing.T) {
	for _, key := range []string{render.ActionTips, render.ActionWater, "prep_flood"} {
		if !lookupAction(key) {
			t.Errorf("lookupAction(%q) = false, want true", key)
		}
	}
	for _, key := range []string{render.ActionWeather, render.ActionBack, "law_air"} {
		if lookupAction(key) {
			t.Errorf("lookupAction(%q) = true, want false", key)
		}
	}
}
