// Package game implements the blackjack round engine.
//
// The main type is Table, which owns the shoe, the seats and the dealer and
// plays one round at a time through PlayRound: bet, initial deal, naturals,
// per-seat actions, dealer play and settlement of the human seat.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	t, err := game.NewTable(game.DefaultRules(), rng,
//	    game.WithInput(input),
//	    game.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	for {
//	    result, err := t.PlayRound()
//	    if errors.Is(err, game.ErrInsufficientFunds) {
//	        break
//	    }
//	    // ...
//	}
//
// # Deterministic Testing
//
// Every shuffle draws from the injected RNG. Tests that need exact cards can
// hand the table a stacked shoe:
//
//	shoe := cards.NewStackedShoe(cards.MustParseCards("Th6c9cTd6s")...)
//	t, _ := game.NewTable(rules, rng, game.WithShoe(shoe))
//
// # Events
//
// Tables publish typed events on an EventBus. The console renderer and the
// statistics collector are both subscribers; the engine itself keeps no
// history beyond the current round.
package game
