package types

import (
	"encoding/json"
)

// LedgerRecord is the plain persisted shape of a ledger. Holdings are keyed
// by symbol; Transactions keep execution order.
type LedgerRecord struct {
	Cash         float64            `json:"cash"`
	StartingCash float64            `json:"startingCash"`
	Holdings     map[string]Holding `json:"holdings"`
	Transactions []Transaction      `json:"transactions"`
}

// Snapshot is the full state handed to persistence and UI collaborators.
// Loading a snapshot and snapshotting again must yield identical fields.
type Snapshot struct {
	Instruments []Instrument `json:"instruments"`
	Ledger      LedgerRecord `json:"ledger"`

	// NewsHistory is most-recent-first, capped at NewsHistoryLimit.
	NewsHistory []NewsItem `json:"newsHistory"`
}

func (s Snapshot) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func ParseSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
