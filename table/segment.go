package table

// Segment splits rows, already ordered top to bottom, into tables wherever
// the distance between consecutive row positions exceeds gap.
func Segment(rows []Row, gap float64) [][]Row {
	var segs [][]Row
	var cur []Row
	for i, r := range rows {
		if i > 0 && r.Y-rows[i-1].Y > gap {
			segs = append(segs, cur)
			cur = nil
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	return segs
}
