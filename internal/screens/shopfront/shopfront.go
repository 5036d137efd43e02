// Package shopfront is the in-app shop where gems buy refills and boosts.
package shopfront

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/owllearn/internal/router"
	"github.com/abhisek/owllearn/internal/screen"
	"github.com/abhisek/owllearn/internal/shop"
	"github.com/abhisek/owllearn/internal/ui/layout"
	"github.com/abhisek/owllearn/internal/ui/theme"
)

// Buyer completes purchases. *shop.Shop satisfies it.
type Buyer interface {
	Purchase(ctx context.Context, id shop.ItemID) (shop.Receipt, error)
}

// ShopScreen lists the catalog and buys the selected item on Enter.
type ShopScreen struct {
	ctx      context.Context
	buyer    Buyer
	items    []shop.Item
	selected int
	gems     int
	notice   string
	failed   bool
}

var _ screen.Screen = (*ShopScreen)(nil)

// New creates a shop screen. notice, if set, is shown above the catalog.
func New(ctx context.Context, b Buyer, gems int, notice string) *ShopScreen {
	return &ShopScreen{
		ctx:    ctx,
		buyer:  b,
		items:  shop.Catalog(),
		gems:   gems,
		notice: notice,
		failed: notice != "",
	}
}

func (s *ShopScreen) Init() tea.Cmd { return nil }

func (s *ShopScreen) Title() string { return "Shop" }

func (s *ShopScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Buy"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ShopScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateChangedMsg:
		s.gems = msg.State.Gems
	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.items)-1 {
				s.selected++
			}
		case "enter":
			s.buy(s.items[s.selected])
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ShopScreen) buy(it shop.Item) {
	r, err := s.buyer.Purchase(s.ctx, it.ID)
	var short *shop.InsufficientFundsError
	switch {
	case errors.As(err, &short):
		s.notice = fmt.Sprintf("You need %d more gems for %s.", short.Shortfall(), it.Name)
		s.failed = true
	case err != nil:
		s.notice = fmt.Sprintf("Could not buy %s: %v", it.Name, err)
		s.failed = true
	default:
		s.gems = r.State.Gems
		s.notice = fmt.Sprintf("Bought %s %s!", r.Item.Icon, r.Item.Name)
		if !r.ExpiresAt.IsZero() {
			s.notice += " Active until " + r.ExpiresAt.Format(time.Kitchen) + "."
		}
		s.failed = false
	}
}

func (s *ShopScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + theme.Gems.Render(fmt.Sprintf("◆ %d gems", s.gems)))
	b.WriteString("\n\n")

	for i, it := range s.items {
		prefix := "    "
		style := theme.Body
		if i == s.selected {
			prefix = "  ▸ "
			style = lipgloss.NewStyle().Foreground(theme.Sky).Bold(true)
		}
		if it.Price > s.gems {
			style = style.Foreground(theme.TextDim)
		}
		line := fmt.Sprintf("%s%s %-20s %4d ◆  %s", prefix, it.Icon, it.Name, it.Price, it.Description)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if s.notice != "" {
		b.WriteString("\n")
		if s.failed {
			b.WriteString("  " + theme.Incorrect.Render(s.notice))
		} else {
			b.WriteString("  " + theme.Correct.Render(s.notice))
		}
	}
	return b.String()
}
