package nbrender

// CoalesceStreams merges each maximal run of adjacent stream outputs that
// share a stream name, compared as written, into a single output whose text is the run's text in
// order. Other outputs pass through and end any run. The input slice and
// its records are left untouched.
func CoalesceStreams(outputs []*Output) []*Output {
	merged := make([]*Output, 0, len(outputs))
	for _, o := range outputs {
		if n := len(merged); n > 0 && sameStream(merged[n-1], o) {
			merged[n-1] = appendStream(merged[n-1], o)
			continue
		}
		merged = append(merged, o)
	}
	return merged
}

func sameStream(a, b *Output) bool {
	return a.typ == OutputStream && b.typ == OutputStream && a.raw.Stream == b.raw.Stream
}

// appendStream returns a new output carrying a copy of last's record with
// next's text appended.
func appendStream(last, next *Output) *Output {
	rec := *last.raw
	text := make(Lines, 0, len(last.raw.Text)+len(next.raw.Text))
	text = append(text, last.raw.Text...)
	rec.Text = append(text, next.raw.Text...)
	return &Output{raw: &rec, typ: last.typ, cell: last.cell}
}
