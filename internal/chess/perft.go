package chess

// Perft counts the leaf positions reachable in exactly depth plies. Promotions count once per
// promotion kind.
func Perft(b Board, side Color, st State, depth int) int {
	if depth == 0 {
		return 1
	}
	total := 0
	for _, m := range AllMoves(&b, side, st) {
		candidates := []Move{m}
		if NeedsPromotion(&b, m) {
			candidates = Promotions(m)
		}
		for _, c := range candidates {
			if depth == 1 {
				total++
				continue
			}
			next, nextSt, _ := Apply(b, st, c)
			total += Perft(next, side.Opponent(), nextSt, depth-1)
		}
	}
	return total
}

// Divide returns the perft count below each root move keyed by its coordinate string.
func Divide(b Board, side Color, st State, depth int) map[string]int {
	out := make(map[string]int)
	if depth < 1 {
		return out
	}
	for _, m := range AllMoves(&b, side, st) {
		candidates := []Move{m}
		if NeedsPromotion(&b, m) {
			candidates = Promotions(m)
		}
		for _, c := range candidates {
			next, nextSt, _ := Apply(b, st, c)
			out[c.String()] = Perft(next, side.Opponent(), nextSt, depth-1)
		}
	}
	return out
}
