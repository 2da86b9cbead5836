// Package api implements the optional read-only status endpoint exposed
// alongside the Prometheus metrics handler.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edu-ciaa/enigma-sim/internal/core/fsm"
)

// API serves the machine's current, non-secret state: mode and rotor
// positions. It never exposes the plugboard mapping or the last output
// character, since those would leak plaintext/ciphertext correlation.
type API struct {
	machine *fsm.FSM
}

// New binds the status API to the running FSM.
func New(machine *fsm.FSM) *API {
	return &API{machine: machine}
}

type statusResponse struct {
	Mode           string `json:"mode"`
	RotorPositions [3]int `json:"rotor_positions"`
}

// Status godoc
// @Summary Report the machine's current mode and rotor positions
// @Produce json
// @Success 200 {object} statusResponse
// @Router /status [get]
func (a *API) Status(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{
		Mode:           a.machine.Mode().String(),
		RotorPositions: a.machine.RotorPositions(),
	})
}
