// Package miner holds the stub side of the miner control boundary. Spawning
// and supervising the actual miner process belongs to the packaged desktop
// runtime, not this bridge; the stub keeps the calling contract stable until
// a real supervisor replaces it.
package miner

import "fmt"

type Controller struct{}

func NewController() *Controller {
	return &Controller{}
}

// Start acknowledges the request without spawning anything.
func (c *Controller) Start(wallet string) (string, error) {
	return fmt.Sprintf("Miner started for wallet: %s", wallet), nil
}

// Stop acknowledges the request without touching any process.
func (c *Controller) Stop() (string, error) {
	return "Miner stopped", nil
}
