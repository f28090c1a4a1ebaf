package publication

import "sort"

// Sort orders records for display:
//
//  1. year, newest first
//  2. peer-reviewed marker present before absent
//  3. first-author records before others
//  4. authors string, ascending
//
// The sort is stable, so records tied on all four keys keep their
// input order.
func Sort(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := &recs[i], &recs[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.PeerReviewed != b.PeerReviewed {
			return a.PeerReviewed
		}
		if a.IsFirstAuthor != b.IsFirstAuthor {
			return a.IsFirstAuthor
		}
		return a.Authors < b.Authors
	})
}

// AssignWeights sets Weight to the 1-based rank of each record in its
// current order. Weights over the slice are exactly {1..N}.
func AssignWeights(recs []Record) {
	for i := range recs {
		recs[i].Weight = i + 1
	}
}

// MarkYearHeadings sets YearHeading on the first record and on every
// record whose year differs from its predecessor. Records continuing a
// year section get 0.
func MarkYearHeadings(recs []Record) {
	for i := range recs {
		if i == 0 || recs[i].Year != recs[i-1].Year {
			recs[i].YearHeading = recs[i].Year
		} else {
			recs[i].YearHeading = 0
		}
	}
}

// Prepare derives all display fields in place: first-author flags, sort
// order, weights, year headings, and normalized titles.
func Prepare(recs []Record, selfAuthor string) {
	Annotate(recs, selfAuthor)
	Sort(recs)
	AssignWeights(recs)
	MarkYearHeadings(recs)
	NormalizeTitles(recs)
}
