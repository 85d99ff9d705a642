package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Roadmap", -20, 1, 100)
	for _, want := range []string{"Khalari", "Roadmap", "◆ -20", "🔥 1 day"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q:\n%s", want, h)
		}
	}
	if strings.Contains(RenderHeader("Home", 0, 3, 100), "1 day") {
		t.Error("streak of 3 rendered as singular")
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("Home", 0, 0, 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 30)
	if got := lipgloss.Height(frame); got != 30 {
		t.Fatalf("frame height %d, want 30", got)
	}
}

func TestCompactThresholds(t *testing.T) {
	if !IsCompactWidth(99) || IsCompactWidth(100) {
		t.Error("compact width threshold is 100")
	}
	if !IsTooSmall(79, 40) || IsTooSmall(80, 24) {
		t.Error("minimum size is 80x24")
	}
}
