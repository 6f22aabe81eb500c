package console

import (
	"fmt"
	"io"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/strategy"
)

// Renderer prints table events as they happen
type Renderer struct {
	w      io.Writer
	styles Styles
}

// NewRenderer creates a renderer writing to w
func NewRenderer(w io.Writer, styles Styles) *Renderer {
	return &Renderer{w: w, styles: styles}
}

func (r *Renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// OnEvent implements game.EventSubscriber
func (r *Renderer) OnEvent(event game.Event) {
	s := r.styles
	switch e := event.(type) {
	case game.ShoeReplacedEvent:
		r.printf("%s", s.Info.Render(fmt.Sprintf("Shuffling a fresh shoe (%d cards left, %d in the new shoe)", e.Remaining, e.Size)))

	case game.RoundStartEvent:
		r.printf("")
		r.printf("%s", s.Header.Render(fmt.Sprintf("Round %d", e.Round)))
		r.printf("Bet $%.2f  Balance $%.2f  Shoe %d", e.Bet, e.Balance, e.ShoeRemaining)

	case game.InitialDealEvent:
		r.printf("Dealer shows %s", s.Card(e.DealerUpcard))
		for _, seat := range e.Seats {
			r.printf("%s: %s", seat.Name, s.Cards(seat.Cards))
		}

	case game.NaturalEvent:
		if !e.Human {
			r.printf("%s has blackjack", e.Name)
			return
		}
		r.printf("%s", s.Success.Render("Blackjack!"))
		r.printf("Dealer reveals %s", s.Cards(e.DealerCards))

	case game.BookModeEvent:
		r.printf("%s", s.Info.Render("Playing the rest of the round by the book"))

	case game.ActionEvent:
		r.printf("%s", r.action(e))

	case game.SplitEvent:
		who := e.Name
		if e.Human {
			who = "You"
		}
		r.printf("%s %s hand %d: %s | %s", who, s.Actions.Render("split"), e.FromHand+1,
			s.Cards(e.Cards[0]), s.Cards(e.Cards[1]))
		if e.Aces {
			r.printf("%s", s.Info.Render("Split aces take one card each"))
		}

	case game.DealerPlayEvent:
		if !e.Played {
			return
		}
		line := fmt.Sprintf("Dealer: %s (%d)", s.Cards(e.Cards), e.Value)
		if e.Status == game.Busted {
			line += " " + s.Success.Render("busts")
		}
		r.printf("%s", line)

	case game.HandSettledEvent:
		r.printf("Hand %d: %s", e.HandIndex+1, r.outcome(e.HandOutcome))

	case game.RoundEndEvent:
		r.printf("Balance after round: %s", s.HandInfo.Render(fmt.Sprintf("$%.2f", e.Balance)))
		if e.Depleted {
			r.printf("%s", s.Warning.Render("The shoe ran out this round"))
		}

	case game.RoundAbortedEvent:
		r.printf("%s", s.Error.Render("Round aborted: "+e.Reason))
	}
}

func (r *Renderer) action(e game.ActionEvent) string {
	s := r.styles
	who := e.Name
	if e.Human {
		who = "You"
	}
	if e.HandIndex > 0 {
		who = fmt.Sprintf("%s (hand %d)", who, e.HandIndex+1)
	}

	verb := s.Actions.Render(e.Action.String())
	line := fmt.Sprintf("%s %s", who, verb)
	if e.Drawn != nil {
		line += fmt.Sprintf(" and draw %s", s.Card(*e.Drawn))
	}
	line += fmt.Sprintf(" (%d)", e.Value)

	switch {
	case e.Status == game.Busted:
		line += " " + s.Error.Render("bust")
	case e.Action == strategy.Double && e.Human:
		line += fmt.Sprintf(" bet now $%.2f", e.Bet)
	}
	if e.Book && e.Human {
		line += " " + s.Info.Render("[book]")
	}
	return line
}

func (r *Renderer) outcome(o game.HandOutcome) string {
	s := r.styles
	switch o.Outcome {
	case game.BlackjackWin:
		return s.Success.Render(fmt.Sprintf("blackjack pays $%.2f", o.NetDelta))
	case game.Win:
		return s.Success.Render(fmt.Sprintf("win $%.2f", o.NetDelta))
	case game.Loss:
		if o.Status == game.Busted {
			return s.Error.Render(fmt.Sprintf("bust, lose $%.2f", -o.NetDelta))
		}
		return s.Error.Render(fmt.Sprintf("lose $%.2f (%d vs %d)", -o.NetDelta, o.Value, o.DealerValue))
	default:
		return s.Warning.Render(fmt.Sprintf("push (%d)", o.Value))
	}
}
