package table

// tok builds a 10pt tall token whose width follows the text length.
func tok(text string, left, top float64) Token {
	return Token{
		Text:   text,
		Left:   left,
		Right:  left + 6*float64(len(text)),
		Top:    top,
		Bottom: top + 10,
	}
}

func vline(x float64) Line { return Line{X0: x, X1: x, Top: 0, Bottom: 500} }
