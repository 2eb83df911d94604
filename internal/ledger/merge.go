package ledger

import "splitledger/internal/models"

// Merge collapses repeated (from, to) pairs in a single expense's raw
// obligations into one summed amount per pair. Output order is the insertion
// order of each pair's first occurrence, so merging is deterministic and
// idempotent: merging an already-merged set returns it unchanged.
//
// Merge never nets opposite-direction pairs; that is the aggregator's job.
func Merge(obligations []models.Obligation) []models.Obligation {
	type pair struct {
		from, to models.UserID
	}
	index := make(map[pair]int, len(obligations))
	out := make([]models.Obligation, 0, len(obligations))
	for _, o := range obligations {
		k := pair{o.From, o.To}
		if i, ok := index[k]; ok {
			out[i].Amount = out[i].Amount.Add(o.Amount)
			continue
		}
		index[k] = len(out)
		out = append(out, o)
	}
	return out
}
