package domain

import "math/big"

// ContractCreation is the recipient sentinel for transactions with no
// "to" address.
const ContractCreation = "Contract Creation"

// Transaction is a raw transaction as supplied by the block source.
// It is ephemeral: produced per block fetch and discarded after
// classification. Value stays in wei; float conversion happens only at
// classification time to avoid truncating amounts beyond 2^53.
type Transaction struct {
	Hash        string
	From        string
	To          string // empty means contract creation
	Value       *big.Int
	BlockNumber uint64
}
