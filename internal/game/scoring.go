package game

// MoveScore is the score of one lock: size cells, ls rows cleared by this
// lock and lsOld rows cleared by the previous one.
func MoveScore(size, ls, lsOld int) int {
	points := size + 100*(1+ls)*ls/2
	bonus := 0
	if lsOld > 1 {
		bonus = (lsOld - 1) * points / 10
	}
	return points + bonus
}

// PowerScore is the bonus of a power phrase of length n used reps times.
func PowerScore(n, reps int) int {
	points := 2*n + reps
	if reps > 0 {
		points += 300
	}
	return points
}
