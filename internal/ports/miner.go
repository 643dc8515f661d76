package ports

// MinerController starts and stops the local miner. The desktop build ships a
// stub; a real supervisor can replace it behind the same contract.
type MinerController interface {
	Start(wallet string) (string, error)
	Stop() (string, error)
}
