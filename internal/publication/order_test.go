package publication

import "testing"

func TestSort_TieBreakChain(t *testing.T) {
	recs := []Record{
		{Authors: "Brown, C.", Year: 2019},
		{Authors: "Smith, A.", Year: 2020},
		{Authors: "Taylor, J.", Year: 2020, PeerReviewed: true, IsFirstAuthor: true},
		{Authors: "Adams, B.", Year: 2020, PeerReviewed: true},
		{Authors: "Zeller, D.", Year: 2020, PeerReviewed: true, IsFirstAuthor: true},
		{Authors: "Miller, E.", Year: 2021},
	}

	Sort(recs)

	want := []string{
		"Miller, E.", // 2021
		"Taylor, J.", // 2020, marker, first author, T < Z
		"Zeller, D.", // 2020, marker, first author
		"Adams, B.",  // 2020, marker
		"Smith, A.",  // 2020, no marker
		"Brown, C.",  // 2019
	}
	for i, w := range want {
		if recs[i].Authors != w {
			t.Errorf("recs[%d].Authors = %q, want %q", i, recs[i].Authors, w)
		}
	}
}

func TestSort_StableOnFullTies(t *testing.T) {
	recs := []Record{
		{Authors: "Taylor, J.", Year: 2020, Fields: []Field{{Key: "doi", Value: "first"}}},
		{Authors: "Taylor, J.", Year: 2020, Fields: []Field{{Key: "doi", Value: "second"}}},
	}

	Sort(recs)

	if recs[0].DOI() != "first" || recs[1].DOI() != "second" {
		t.Errorf("full ties reordered: got [%s, %s]", recs[0].DOI(), recs[1].DOI())
	}
}

func TestAssignWeights_Permutation(t *testing.T) {
	recs := make([]Record, 7)
	AssignWeights(recs)

	seen := make(map[int]bool)
	for i, rec := range recs {
		if rec.Weight < 1 || rec.Weight > len(recs) {
			t.Errorf("recs[%d].Weight = %d, want in 1..%d", i, rec.Weight, len(recs))
		}
		if seen[rec.Weight] {
			t.Errorf("duplicate weight %d", rec.Weight)
		}
		seen[rec.Weight] = true
	}
	if len(seen) != len(recs) {
		t.Errorf("got %d distinct weights, want %d", len(seen), len(recs))
	}
}

func TestMarkYearHeadings(t *testing.T) {
	recs := []Record{
		{Year: 2021},
		{Year: 2020},
		{Year: 2020},
		{Year: 2018},
	}

	MarkYearHeadings(recs)

	want := []int{2021, 2020, 0, 2018}
	for i, w := range want {
		if recs[i].YearHeading != w {
			t.Errorf("recs[%d].YearHeading = %d, want %d", i, recs[i].YearHeading, w)
		}
	}
}

// The two-row scenario: a peer-reviewed first-author record sorts
// before a non-reviewed one from the same year and carries the year
// heading.
func TestPrepare_Scenario(t *testing.T) {
	recs := []Record{
		{
			Authors: "Smith, A.", Title: "Another one", Year: 2020,
			Fields: []Field{
				{Key: "authors", Value: "Smith, A."},
				{Key: "title", Value: "Another one"},
				{Key: "year", Value: "2020"},
			},
		},
		{
			Authors: "Taylor, J.", Title: "A study", Year: 2020, PeerReviewed: true,
			Fields: []Field{
				{Key: "authors", Value: "Taylor, J."},
				{Key: "title", Value: "A study"},
				{Key: "year", Value: "2020"},
				{Key: "peer_reviewed_article", Value: "x"},
			},
		},
	}

	Prepare(recs, "Taylor, J.")

	if recs[0].Authors != "Taylor, J." {
		t.Fatalf("recs[0].Authors = %q, want Taylor, J.", recs[0].Authors)
	}
	if recs[0].Weight != 1 || recs[1].Weight != 2 {
		t.Errorf("weights = [%d, %d], want [1, 2]", recs[0].Weight, recs[1].Weight)
	}
	if recs[0].YearHeading != 2020 {
		t.Errorf("recs[0].YearHeading = %d, want 2020", recs[0].YearHeading)
	}
	if recs[1].YearHeading != 0 {
		t.Errorf("recs[1].YearHeading = %d, want 0", recs[1].YearHeading)
	}
	if recs[0].Title != "A study." {
		t.Errorf("recs[0].Title = %q, want %q", recs[0].Title, "A study.")
	}
}
