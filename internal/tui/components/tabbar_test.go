package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderTabBarWidthMatchesHitboxes(t *testing.T) {
	for active := range Tabs {
		bar := RenderTabBar(active, 0)
		first := strings.Split(bar, "\n")[0]

		want := len(Tabs) - 1 // separators
		for _, tab := range Tabs {
			want += TabVisualWidth(tab)
		}
		if got := lipgloss.Width(first); got != want {
			t.Fatalf("active=%d tab row width = %d, want %d", active, got, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('3'); got != 2 {
		t.Fatalf("TabIdxByKey('3') = %d, want 2", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Fatalf("TabIdxByKey('z') = %d, want -1", got)
	}
}
