package aggregates

// WriteTxOwnership defines who owns write transaction boundaries.
type WriteTxOwnership string

const (
	// WriteTxOwnedByAggregate means aggregate methods open and commit their own transaction.
	WriteTxOwnedByAggregate WriteTxOwnership = "aggregate_owned"
)

// ReadPolicy defines how an aggregate exposes reads.
type ReadPolicy string

// ReadPolicySnapshot serves whole-aggregate snapshots read inside a transaction.
const ReadPolicySnapshot ReadPolicy = "snapshot_reads"

// Contract describes what an aggregate promises its callers. Operations
// lists the names it reports to hooks and errors.
type Contract struct {
	Name             string
	WriteTxOwnership WriteTxOwnership
	ReadPolicy       ReadPolicy
	LockScope        string
	Operations       []string
	Notes            string
}

// Aggregate is the common marker for aggregate contracts.
type Aggregate interface {
	Contract() Contract
}

func (c Contract) RequiresAggregateOwnedTx() bool {
	return c.WriteTxOwnership == WriteTxOwnedByAggregate
}

// Declares reports whether op is one of the contract's operations.
func (c Contract) Declares(op string) bool {
	for _, o := range c.Operations {
		if o == op {
			return true
		}
	}
	return false
}
