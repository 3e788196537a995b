package compare

// Stats holds counts about a comparison.
type Stats struct {
	Rows      int `json:"rows"`                 // number of reconciled positions
	Same      int `json:"same"`                 // positions holding equal values
	Different int `json:"different"`            // positions holding different values
	LeftOnly  int `json:"left_only,omitempty"`  // positions missing from the right document
	RightOnly int `json:"right_only,omitempty"` // positions missing from the left document
}

// Summarize counts the rows of a comparison.
func Summarize(rows []Row) Stats {
	st := Stats{Rows: len(rows)}
	for _, r := range rows {
		switch {
		case r.Status == Same:
			st.Same++
		case r.LeftOnly():
			st.Different++
			st.LeftOnly++
		case r.RightOnly():
			st.Different++
			st.RightOnly++
		default:
			st.Different++
		}
	}
	return st
}

// Identical reports whether no position differs.
func (s Stats) Identical() bool {
	return s.Different == 0
}
