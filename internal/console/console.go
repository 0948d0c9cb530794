// Package console is a line-based hot-seat client for the terminal.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"checkers/internal/game"
	"checkers/internal/table"
)

const help = `Commands:
  <row> <col>                 click a square (select, deselect or move)
  <row> <col> <row> <col>     move directly
  clear                       clear the selection
  reset                       start a new game
  quit                        leave
`

// Run reads commands from in until EOF or quit. After a verdict the
// game-over message is printed and a new game starts.
func Run(in io.Reader, out io.Writer, t *table.Table) error {
	sc := bufio.NewScanner(in)
	fmt.Fprint(out, help)
	render(out, t.State())

	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Fprint(out, help)
			continue
		case "clear":
			render(out, t.ClearSelection())
			continue
		case "reset":
			render(out, t.Reset())
			continue
		}

		nums, err := parseInts(fields)
		if err != nil {
			fmt.Fprintln(out, "Invalid input:", err)
			continue
		}

		var st table.State
		switch len(nums) {
		case 2:
			var cr table.ClickResult
			cr, err = t.Click(game.Cell{Row: nums[0], Col: nums[1]})
			st = cr.State
		case 4:
			_, st, err = t.Move(game.Cell{Row: nums[0], Col: nums[1]}, game.Cell{Row: nums[2], Col: nums[3]})
		default:
			fmt.Fprintln(out, "Enter two or four numbers.")
			continue
		}
		if err != nil {
			fmt.Fprintln(out, describe(err))
			continue
		}
		render(out, st)

		if st.Verdict != game.VerdictNone {
			fmt.Fprintln(out, "Game Over:", st.Message)
			render(out, t.Reset())
		}
	}
}

func parseInts(fields []string) ([]int, error) {
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", f)
		}
		out = append(out, n)
	}
	return out, nil
}

func describe(err error) string {
	var me *game.MoveError
	switch {
	case errors.As(err, &me) && me.Reason != "" && errors.Is(err, game.ErrInvalidSelection):
		return "Invalid Selection: " + me.Reason
	case errors.Is(err, game.ErrIllegalMove):
		return "Illegal move."
	case errors.Is(err, game.ErrGameOver):
		return "The game is over, type reset."
	default:
		return err.Error()
	}
}

func render(out io.Writer, st table.State) {
	highlight := map[game.Cell]byte{}
	if c := st.Selection.Cell; c != nil {
		highlight[*c] = '*'
	}
	for _, d := range st.Selection.Destinations {
		highlight[d] = '+'
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "  0 1 2 3 4 5 6 7")
	for row := game.BoardSize - 1; row >= 0; row-- {
		fmt.Fprintf(out, "%d", row)
		for col := 0; col < game.BoardSize; col++ {
			c := game.Cell{Row: row, Col: col}
			sym := st.Board.At(c).Symbol()
			if h, ok := highlight[c]; ok && sym == '.' {
				sym = h
			}
			fmt.Fprintf(out, " %c", sym)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, st.Status)
}
