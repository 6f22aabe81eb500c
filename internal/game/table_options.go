package game

import (
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/cards"
)

// TableOption configures a Table during creation
type TableOption func(*Table)

// WithInput sets the collaborator that supplies the human seat's bets and
// decisions. Defaults to AutoBet.
func WithInput(in Input) TableOption {
	return func(t *Table) { t.input = in }
}

// WithAutoPlay puts the human seat in book mode from the start of every
// round, as simulation does
func WithAutoPlay() TableOption {
	return func(t *Table) { t.autoPlay = true }
}

// WithLogger sets the table logger
func WithLogger(logger *log.Logger) TableOption {
	return func(t *Table) { t.logger = logger }
}

// WithEventBus publishes table events to bus
func WithEventBus(bus EventBus) TableOption {
	return func(t *Table) { t.bus = bus }
}

// WithClock sets the clock used to timestamp events
func WithClock(clock quartz.Clock) TableOption {
	return func(t *Table) { t.clock = clock }
}

// WithShoe makes the table start from the given shoe instead of a freshly
// shuffled one
func WithShoe(shoe *cards.Shoe) TableOption {
	return func(t *Table) { t.shoe = shoe }
}

// WithShoeFactory overrides how replacement shoes are built
func WithShoeFactory(factory func() (*cards.Shoe, error)) TableOption {
	return func(t *Table) { t.newShoe = factory }
}

// WithBalance overrides the human seat's starting balance
func WithBalance(balance float64) TableOption {
	return func(t *Table) { t.balance = balance }
}
