// Package console is the terminal front end for interactive play: a
// line-based input collaborator and an event renderer.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

var moveKeys = map[game.Move]string{
	game.MoveHit:    "(H)it",
	game.MoveStand:  "(S)tand",
	game.MoveDouble: "(D)ouble",
	game.MoveSplit:  "s(P)lit",
	game.MoveBook:   "(B)ook",
}

// LineInput reads bets and decisions one line at a time. Bad answers are
// rejected with a message and asked again; end of input quits.
type LineInput struct {
	in     *bufio.Reader
	out    io.Writer
	styles Styles
}

// NewLineInput creates an input reading from r and prompting on w
func NewLineInput(r io.Reader, w io.Writer, styles Styles) *LineInput {
	return &LineInput{in: bufio.NewReader(r), out: w, styles: styles}
}

func (l *LineInput) readLine() (string, error) {
	line, err := l.in.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line == "":
		return "", game.ErrQuit
	case !errors.Is(err, io.EOF):
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (l *LineInput) reject(msg string) {
	fmt.Fprintln(l.out, l.styles.Error.Render(msg))
}

// Bet asks for a stake. An empty answer takes the default when the balance
// covers it; "q" quits.
func (l *LineInput) Bet(balance, defaultBet, minBet float64) (float64, error) {
	if balance < defaultBet {
		fmt.Fprintln(l.out, l.styles.Warning.Render(
			fmt.Sprintf("Your balance $%.2f is below the default bet $%.2f", balance, defaultBet)))
	}

	for {
		fmt.Fprintf(l.out, "Enter bet (default $%.2f, min $%.2f, max $%.2f, q to quit): ", defaultBet, minBet, balance)
		line, err := l.readLine()
		if err != nil {
			return 0, err
		}

		switch strings.ToLower(line) {
		case "q", "quit":
			return 0, game.ErrQuit
		case "":
			if defaultBet <= balance {
				return defaultBet, nil
			}
			l.reject("The default bet is more than your balance")
			continue
		}

		bet, err := strconv.ParseFloat(strings.TrimPrefix(line, "$"), 64)
		if err != nil {
			l.reject("Please enter a number")
			continue
		}
		if bet < minBet || bet > balance {
			l.reject(fmt.Sprintf("Bet must be between $%.2f and $%.2f", minBet, balance))
			continue
		}
		return bet, nil
	}
}

// Action shows the hand and asks for one of the allowed moves
func (l *LineInput) Action(prompt game.Prompt, allowed []game.Move) (game.Move, error) {
	s := l.styles
	label := "Your hand"
	if prompt.HandsCount > 1 {
		label = fmt.Sprintf("Your hand %d of %d", prompt.HandIndex+1, prompt.HandsCount)
	}
	soft := ""
	if prompt.Soft {
		soft = "soft "
	}
	fmt.Fprintf(l.out, "%s: %s (%s%d) vs dealer %s, bet $%.2f\n",
		label, s.Cards(prompt.Cards), soft, prompt.Value, s.Card(prompt.DealerUpcard), prompt.Bet)

	options := make([]string, len(allowed))
	for i, m := range allowed {
		options[i] = moveKeys[m]
	}

	for {
		fmt.Fprintf(l.out, "%s: ", s.Actions.Render(strings.Join(options, ", ")))
		line, err := l.readLine()
		if err != nil {
			return 0, err
		}

		move, ok := parseMove(line)
		if !ok {
			l.reject("Unrecognised choice")
			continue
		}
		if !slices.Contains(allowed, move) {
			l.reject(fmt.Sprintf("You cannot %s this hand", move))
			continue
		}
		return move, nil
	}
}

// PlayAgain asks whether to deal another round. Anything but "n" continues.
func (l *LineInput) PlayAgain() (bool, error) {
	fmt.Fprint(l.out, "Play another hand? (Y/n): ")
	line, err := l.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "n", "no", "q", "quit":
		return false, nil
	}
	return true, nil
}

func parseMove(s string) (game.Move, bool) {
	switch strings.ToLower(s) {
	case "h", "hit":
		return game.MoveHit, true
	case "s", "stand":
		return game.MoveStand, true
	case "d", "double":
		return game.MoveDouble, true
	case "p", "split":
		return game.MoveSplit, true
	case "b", "book":
		return game.MoveBook, true
	}
	return 0, false
}
