package game

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/cards"
	"github.com/lox/blackjack/internal/strategy"
)

// maxPromptAttempts bounds how often an input collaborator may answer with
// a move that is not on offer before basic strategy takes over the hand.
const maxPromptAttempts = 3

// RoundResult summarises a settled round
type RoundResult struct {
	Round       int
	Bet         float64
	Outcomes    []HandOutcome
	Net         float64
	Balance     float64
	DealerCards []cards.Card
	DealerValue int
	Depleted    bool // the shoe ran out after the initial deal
}

// Table runs rounds of blackjack for one human seat, a number of computer
// seats and the dealer. It exclusively owns the shoe and the seats; the
// shoe and the human balance carry over from round to round.
type Table struct {
	rules    Rules
	rng      *rand.Rand
	input    Input
	autoPlay bool
	logger   *log.Logger
	bus      EventBus
	clock    quartz.Clock

	shoe        *cards.Shoe
	newShoe     func() (*cards.Shoe, error)
	replaceShoe bool

	human   *Player
	players []*Player
	dealer  *Dealer
	balance float64
	round   int

	depleted bool
}

// NewTable creates a table with the given rules. The RNG is required so
// that every shuffle is reproducible.
func NewTable(rules Rules, rng *rand.Rand, opts ...TableOption) (*Table, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if rng == nil {
		return nil, errors.New("rng is required for table creation")
	}

	t := &Table{
		rules:   rules,
		rng:     rng,
		input:   AutoBet{},
		logger:  log.New(io.Discard),
		bus:     NewEventBus(),
		clock:   quartz.NewReal(),
		balance: rules.StartingBalance,
		dealer:  NewDealer(),
	}
	t.newShoe = func() (*cards.Shoe, error) {
		return cards.NewShoe(t.rules.Decks, t.rng)
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.shoe == nil {
		shoe, err := t.newShoe()
		if err != nil {
			return nil, fmt.Errorf("failed to build shoe: %w", err)
		}
		t.shoe = shoe
	}

	t.human = NewHumanPlayer(0, "You")
	t.players = []*Player{t.human}
	for seat := 1; seat <= rules.AISeats; seat++ {
		t.players = append(t.players, NewAIPlayer(seat))
	}

	return t, nil
}

// Balance returns the human seat's running balance
func (t *Table) Balance() float64 { return t.balance }

// Round returns the number of rounds started so far
func (t *Table) Round() int { return t.round }

// Rules returns the table rules
func (t *Table) Rules() Rules { return t.rules }

// Shoe returns the shoe currently in use
func (t *Table) Shoe() *cards.Shoe { return t.shoe }

// Players returns the seats in table order, human first
func (t *Table) Players() []*Player { return t.players }

// Human returns the human seat
func (t *Table) Human() *Player { return t.human }

// Dealer returns the dealer
func (t *Table) Dealer() *Dealer { return t.dealer }

// EventBus returns the bus table events are published on
func (t *Table) EventBus() EventBus { return t.bus }

func (t *Table) base() eventBase {
	return eventBase{Round: t.round, at: t.clock.Now()}
}

// PlayRound plays one complete round: bet, deal, naturals, seat actions,
// dealer play and settlement of the human seat.
func (t *Table) PlayRound() (*RoundResult, error) {
	if err := t.prepareShoe(); err != nil {
		return nil, err
	}

	if t.balance < t.rules.MinBet {
		return nil, fmt.Errorf("%w: balance %.2f below minimum bet %.2f", ErrInsufficientFunds, t.balance, t.rules.MinBet)
	}
	bet, err := t.input.Bet(t.balance, t.rules.DefaultBet, t.rules.MinBet)
	if err != nil {
		return nil, err
	}
	if bet < t.rules.MinBet || bet > t.balance {
		return nil, fmt.Errorf("%w: %.2f not within [%.2f, %.2f]", ErrInvalidBet, bet, t.rules.MinBet, t.balance)
	}

	t.round++
	t.depleted = false
	for _, p := range t.players {
		p.resetForRound(bet)
		p.BookMode = p.Human && t.autoPlay
	}
	t.dealer = NewDealer()

	t.logger.Debug("Starting round", "round", t.round, "bet", bet, "balance", t.balance, "shoe", t.shoe.Remaining())
	t.bus.Publish(RoundStartEvent{eventBase: t.base(), Bet: bet, Balance: t.balance, ShoeRemaining: t.shoe.Remaining()})

	if err := t.dealInitial(); err != nil {
		t.replaceShoe = true
		t.logger.Error("Shoe depleted during initial deal", "round", t.round, "error", err)
		t.bus.Publish(RoundAbortedEvent{eventBase: t.base(), Reason: err.Error()})
		return nil, fmt.Errorf("%w: %w", ErrRoundAborted, err)
	}

	result := &RoundResult{Round: t.round, Bet: bet}

	humanNatural := t.resolveNaturals(result)

	for _, p := range t.players {
		if p.Human && humanNatural {
			continue
		}
		// Splits insert hands after i, so the length is re-read every pass.
		for i := 0; i < len(p.Hands); i++ {
			if err := t.playHand(p, i); err != nil {
				t.bus.Publish(RoundAbortedEvent{eventBase: t.base(), Reason: err.Error()})
				return nil, err
			}
		}
	}

	t.playDealer()
	t.settle(result)

	result.Balance = t.balance
	result.DealerCards = slices.Clone(t.dealer.Hand.Cards)
	result.DealerValue = t.dealer.Hand.Value()
	result.Depleted = t.depleted
	if t.depleted {
		t.replaceShoe = true
	}

	t.logger.Info("Round complete", "round", t.round, "net", result.Net, "balance", t.balance, "depleted", t.depleted)
	t.bus.Publish(RoundEndEvent{
		eventBase: t.base(),
		Balance:   t.balance,
		Net:       result.Net,
		Hands:     len(t.human.Hands),
		Depleted:  t.depleted,
	})

	return result, nil
}

// prepareShoe swaps in a fresh shoe when the current one has dropped below
// the reshuffle threshold or ran out last round
func (t *Table) prepareShoe() error {
	if !t.replaceShoe && !t.shoe.NeedsReshuffle(t.rules.ReshuffleThreshold) {
		return nil
	}
	remaining := t.shoe.Remaining()
	shoe, err := t.newShoe()
	if err != nil {
		return fmt.Errorf("failed to build shoe: %w", err)
	}
	t.shoe = shoe
	t.replaceShoe = false

	t.logger.Info("Reshuffling shoe", "remaining", remaining, "size", shoe.InitialSize())
	t.bus.Publish(ShoeReplacedEvent{
		eventBase: eventBase{Round: t.round + 1, at: t.clock.Now()},
		Remaining: remaining,
		Size:      shoe.InitialSize(),
	})
	return nil
}

// dealInitial deals one card to each seat then the dealer, twice. The
// dealer's second card is the hole card.
func (t *Table) dealInitial() error {
	for range 2 {
		for _, p := range t.players {
			c, err := t.shoe.Deal()
			if err != nil {
				return err
			}
			p.Hands[0].AddCard(c)
		}
		c, err := t.shoe.Deal()
		if err != nil {
			return err
		}
		t.dealer.Hand.AddCard(c)
	}

	seats := make([]SeatCards, len(t.players))
	for i, p := range t.players {
		seats[i] = SeatCards{Seat: p.Seat, Name: p.Name, Human: p.Human, Cards: slices.Clone(p.Hands[0].Cards)}
	}
	t.bus.Publish(InitialDealEvent{eventBase: t.base(), Seats: seats, DealerUpcard: t.dealer.Upcard()})
	return nil
}

// resolveNaturals marks every dealt blackjack before anyone acts and settles
// the human's immediately. It reports whether the human had a natural.
func (t *Table) resolveNaturals(result *RoundResult) bool {
	humanNatural := false
	for _, p := range t.players {
		h := p.Hands[0]
		if !h.IsNatural() {
			continue
		}
		h.Status = Blackjack

		ev := NaturalEvent{eventBase: t.base(), Seat: p.Seat, Name: p.Name, Human: p.Human}
		if !p.Human {
			t.logger.Debug("Computer seat has blackjack", "seat", p.Seat, "cards", h.String())
			t.bus.Publish(ev)
			continue
		}

		humanNatural = true
		ev.DealerNatural = t.dealer.Hand.IsNatural()
		ev.DealerCards = slices.Clone(t.dealer.Hand.Cards)
		t.bus.Publish(ev)

		outcome := HandOutcome{
			HandIndex:   0,
			Bet:         h.Bet,
			Status:      Blackjack,
			Value:       21,
			DealerValue: t.dealer.Hand.Value(),
		}
		if ev.DealerNatural {
			outcome.Outcome = Push
		} else {
			outcome.Outcome = BlackjackWin
			outcome.NetDelta = t.rules.BlackjackPayout(h.Bet)
		}
		t.applyOutcome(result, outcome)
	}
	return humanNatural
}

// playHand acts on hand i of p until it is no longer active
func (t *Table) playHand(p *Player, i int) error {
	h := p.Hands[i]
	for h.Status == Active {
		if h.Value() > 21 {
			h.Status = Busted
			return nil
		}

		canDouble := h.IsDoublable() && t.canCover(p, h.Bet)
		canSplit := h.IsSplittable(len(p.Hands)) && t.canCover(p, h.Bet)

		action, book, err := t.chooseAction(p, i, canDouble, canSplit)
		if err != nil {
			return err
		}

		switch action {
		case strategy.Hit:
			c, ok := t.draw(p, i, "hit")
			if !ok {
				return nil
			}
			h.AddCard(c)
			if h.Value() > 21 {
				h.Status = Busted
			}
			t.publishAction(p, i, action, book, &c, false)

		case strategy.Stand:
			h.Status = Stood
			t.publishAction(p, i, action, book, nil, false)

		case strategy.Double:
			c, ok := t.draw(p, i, "double")
			if !ok {
				return nil
			}
			first := false
			if p.Human {
				h.Bet *= 2
				first = !p.DoubledThisRound
				p.DoubledThisRound = true
			}
			h.Doubled = true
			h.AddCard(c)
			h.Status = Doubled
			if h.Value() > 21 {
				h.Status = Busted
			}
			t.publishAction(p, i, action, book, &c, first)
			return nil

		case strategy.Split:
			if !t.split(p, i, book) {
				return nil
			}
		}
	}
	return nil
}

// split divides the pair at hand i. Both replacement cards are drawn before
// anything changes so a depleted shoe leaves the hand untouched. It reports
// whether the original hand may keep acting.
func (t *Table) split(p *Player, i int, book bool) bool {
	h := p.Hands[i]
	first, ok := t.draw(p, i, "split")
	if !ok {
		return false
	}
	second, ok := t.draw(p, i, "split")
	if !ok {
		return false
	}

	aces := h.Cards[0].IsAce()
	moved := h.Cards[1]

	h.Cards = append(h.Cards[:1], first)
	h.Split = true
	h.SplitAce = aces

	newHand := NewHand(0)
	if p.Human {
		newHand.Bet = h.Bet
	}
	newHand.AddCard(moved)
	newHand.AddCard(second)
	newHand.Split = true
	newHand.SplitAce = aces

	// Split aces take exactly one card each and stand, whatever the total.
	if aces {
		h.Status = Stood
		newHand.Status = Stood
	}

	p.insertHand(i, newHand)

	firstSplit := false
	if p.Human {
		firstSplit = !p.SplitThisRound
		p.SplitThisRound = true
	}

	t.logger.Debug("Split", "seat", p.Seat, "hand", i, "aces", aces, "hands", len(p.Hands))
	t.bus.Publish(SplitEvent{
		eventBase:    t.base(),
		Seat:         p.Seat,
		Name:         p.Name,
		Human:        p.Human,
		FromHand:     i,
		NewHand:      i + 1,
		Aces:         aces,
		Book:         book,
		Cards:        [2][]cards.Card{slices.Clone(h.Cards), slices.Clone(newHand.Cards)},
		Bet:          newHand.Bet,
		FirstInRound: firstSplit,
	})
	return !aces
}

// chooseAction asks basic strategy or the input collaborator for the next
// action on hand i. The returned action is always available.
func (t *Table) chooseAction(p *Player, i int, canDouble, canSplit bool) (strategy.Action, bool, error) {
	h := p.Hands[i]
	upcard := t.dealer.Upcard().Value()
	book := func() strategy.Action {
		return strategy.Resolve(h.Cards, upcard, len(p.Hands), canDouble, canSplit)
	}

	if !p.Human || p.BookMode {
		return book(), true, nil
	}

	allowed := []Move{MoveHit, MoveStand}
	if canDouble {
		allowed = append(allowed, MoveDouble)
	}
	if canSplit {
		allowed = append(allowed, MoveSplit)
	}
	allowed = append(allowed, MoveBook)

	prompt := Prompt{
		Round:        t.round,
		HandIndex:    i,
		HandsCount:   len(p.Hands),
		Cards:        slices.Clone(h.Cards),
		Value:        h.Value(),
		Soft:         h.IsSoft(),
		Bet:          h.Bet,
		DealerUpcard: t.dealer.Upcard(),
		Balance:      t.balance,
	}

	for attempt := 0; attempt < maxPromptAttempts; attempt++ {
		move, err := t.input.Action(prompt, allowed)
		if err != nil {
			return 0, false, err
		}
		if !slices.Contains(allowed, move) {
			t.logger.Warn("Move not allowed", "move", move, "hand", i)
			continue
		}
		if move == MoveBook {
			p.BookMode = true
			t.bus.Publish(BookModeEvent{eventBase: t.base(), Seat: p.Seat, HandIndex: i})
			return book(), true, nil
		}
		action, _ := move.action()
		return action, false, nil
	}

	t.logger.Warn("No valid move received, playing by the book", "hand", i)
	return book(), true, nil
}

// canCover reports whether the human's uncommitted balance covers another
// stake of amount. Computer seats are not financially tracked.
func (t *Table) canCover(p *Player, amount float64) bool {
	if !p.Human {
		return true
	}
	return t.balance-p.committed() >= amount
}

// draw deals one card for an action. Depletion ends the hand's turn and
// flags the round; it never aborts the round after the initial deal.
func (t *Table) draw(p *Player, i int, reason string) (cards.Card, bool) {
	c, err := t.shoe.Deal()
	if err != nil {
		t.depleted = true
		t.logger.Error("Shoe depleted mid-round", "round", t.round, "seat", p.Seat, "hand", i, "action", reason)
		return cards.Card{}, false
	}
	return c, true
}

func (t *Table) publishAction(p *Player, i int, action strategy.Action, book bool, drawn *cards.Card, first bool) {
	h := p.Hands[i]
	t.logger.Debug("Action", "seat", p.Seat, "hand", i, "action", action, "book", book, "value", h.Value(), "status", h.Status)
	t.bus.Publish(ActionEvent{
		eventBase:    t.base(),
		Seat:         p.Seat,
		Name:         p.Name,
		Human:        p.Human,
		HandIndex:    i,
		Action:       action,
		Book:         book,
		Drawn:        drawn,
		Value:        h.Value(),
		Status:       h.Status,
		Bet:          h.Bet,
		FirstInRound: first,
	})
}

// needsDealer reports whether any hand is still waiting on a comparison
func (t *Table) needsDealer() bool {
	for _, p := range t.players {
		for _, h := range p.Hands {
			switch h.Status {
			case Active, Stood, Doubled:
				return true
			}
		}
	}
	return false
}

// playDealer draws to the dealer's hand until it reaches DealerStandsOn,
// hitting a soft 17.
func (t *Table) playDealer() {
	d := t.dealer.Hand
	if !t.needsDealer() {
		t.bus.Publish(DealerPlayEvent{eventBase: t.base(), Cards: slices.Clone(d.Cards), Value: d.Value(), Status: d.Status})
		return
	}

	for dealerHits(d) {
		c, err := t.shoe.Deal()
		if err != nil {
			t.depleted = true
			t.logger.Error("Shoe depleted during dealer play", "round", t.round, "value", d.Value())
			break
		}
		d.AddCard(c)
	}
	if d.Value() > 21 {
		d.Status = Busted
	} else {
		d.Status = Stood
	}

	t.logger.Debug("Dealer done", "cards", d.String(), "value", d.Value(), "status", d.Status)
	t.bus.Publish(DealerPlayEvent{eventBase: t.base(), Played: true, Cards: slices.Clone(d.Cards), Value: d.Value(), Status: d.Status})
}

func dealerHits(h *Hand) bool {
	v := h.Value()
	return v < DealerStandsOn || (v == DealerStandsOn && h.IsSoft())
}

// settle pays or collects every human hand not already settled as a natural
func (t *Table) settle(result *RoundResult) {
	dealerValue := t.dealer.effectiveValue()
	for i, h := range t.human.Hands {
		if h.Status == Blackjack {
			continue
		}

		outcome := HandOutcome{
			HandIndex:   i,
			Bet:         h.Bet,
			Status:      h.Status,
			Split:       h.Split,
			Doubled:     h.Doubled,
			Value:       h.Value(),
			DealerValue: dealerValue,
		}
		switch {
		case h.Status == Busted:
			outcome.Outcome = Loss
			outcome.NetDelta = -h.Bet
		case outcome.Value > dealerValue:
			outcome.Outcome = Win
			outcome.NetDelta = h.Bet
		case outcome.Value < dealerValue:
			outcome.Outcome = Loss
			outcome.NetDelta = -h.Bet
		default:
			outcome.Outcome = Push
		}
		t.applyOutcome(result, outcome)
	}
}

func (t *Table) applyOutcome(result *RoundResult, outcome HandOutcome) {
	t.balance += outcome.NetDelta
	result.Net += outcome.NetDelta
	result.Outcomes = append(result.Outcomes, outcome)

	t.logger.Debug("Hand settled", "hand", outcome.HandIndex, "outcome", outcome.Outcome, "net", outcome.NetDelta, "balance", t.balance)
	t.bus.Publish(HandSettledEvent{eventBase: t.base(), HandOutcome: outcome})
}
