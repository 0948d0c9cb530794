package http

import (
	"errors"
	"net/http"

	"checkers/internal/game"
	"checkers/internal/table"

	"github.com/gin-gonic/gin"
)

// errorStatus maps engine errors onto HTTP codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrInvalidSelection):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrIllegalMove):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrGameOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error, st *table.State) {
	body := gin.H{"error": err.Error()}
	if st != nil {
		body["state"] = st
	}
	c.JSON(errorStatus(err), body)
}

// StateHandler returns the board, side to move, counts, selection and verdict.
// @Summary Current game state
// @Tags Game
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /state [get]
func StateHandler(t *table.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"state": t.State()})
	}
}

// LegalMovesHandler lists the destinations of one piece of the side to move.
// @Summary Legal destinations for a piece
// @Tags Game
// @Produce json
// @Param row query int true "Row"
// @Param col query int true "Column"
// @Success 200 {object} map[string]interface{}
// @Router /legal-moves [get]
func LegalMovesHandler(t *table.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q LegalMovesQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "row and col are required"})
			return
		}
		from := game.Cell{Row: *q.Row, Col: *q.Col}
		dests, err := t.LegalDestinations(from)
		if err != nil {
			fail(c, err, nil)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cell": from, "destinations": dests})
	}
}

// SelectHandler selects a piece and highlights where it can go.
// @Summary Select a piece
// @Tags Game
// @Accept json
// @Produce json
// @Param request body CellRequest true "Cell"
// @Success 200 {object} map[string]interface{}
// @Router /select [post]
func SelectHandler(t *table.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CellRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "row and col are required"})
			return
		}
		st, err := t.Select(req.Cell())
		if err != nil {
			fail(c, err, &st)
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": st})
	}
}

// ClickHandler forwards one square pick: select, deselect or move.
// @Summary Click a square
// @Tags Game
// @Accept json
// @Produce json
// @Param request body CellRequest true "Cell"
// @Success 200 {object} table.ClickResult
// @Router /click [post]
func ClickHandler(t *table.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CellRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "row and col are required"})
			return
		}
		res, err := t.Click(req.Cell())
		if err != nil {
			fail(c, err, &res.State)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// MoveHandler applies a single step or capture for the side to move.
// @Summary Apply a move
// @Tags Game
// @Accept json
// @Produce json
// @Param request body MoveRequest true "Move"
// @Success 200 {object} map[string]interface{}
// @Router /move [post]
func MoveHandler(t *table.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MoveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required"})
			return
		}
		res, st, err := t.Move(*req.From, *req.To)
		if err != nil {
			fail(c, err, &st)
			return
		}
		c.JSON(http.StatusOK, gin.H{"result": res, "state": st})
	}
}

// @Summary Clear the selection
// @Tags Game
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /clear-selection [post]
func ClearSelectionHandler(t *table.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"state": t.ClearSelection()})
	}
}

// ResetHandler starts a new game under a new id.
// @Summary New game
// @Tags Game
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /reset [post]
func ResetHandler(t *table.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"state": t.Reset()})
	}
}

// GamesHandler lists finished games, newest first.
// @Summary Finished games
// @Tags Game
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /games [get]
func GamesHandler(t *table.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"games": t.Records()})
	}
}
