package discovery

import (
	"github.com/dcbills/tracker/internal/billnum"
	"github.com/dcbills/tracker/internal/dataset"
)

// TrackedSet collects every canonical identifier already present in the
// dataset, across bills, riders and support bills. Each record is
// registered twice: its id verbatim, and the canonical form of every
// display citation in billNumbers. The double registration guards
// against seed-data ids that diverge from strict type+number
// canonicalization (composite ids like "hr2056-s1522").
func TrackedSet(doc *dataset.Document) map[string]struct{} {
	tracked := make(map[string]struct{})

	for _, bill := range doc.AllBills() {
		tracked[bill.ID] = struct{}{}

		for _, citation := range bill.BillNumbers {
			if ref, ok := billnum.Parse(citation); ok {
				tracked[ref.ID()] = struct{}{}
			}
		}
	}
	return tracked
}
