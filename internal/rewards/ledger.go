package rewards

import "github.com/sandeepkv93/trackd/internal/model"

// TotalDone counts every done slot across all tasks; one slot earns one coin.
func TotalDone(tasks []model.Task) int {
	total := 0
	for _, t := range tasks {
		total += t.DoneCount()
	}
	return total
}

// Unclaimed is the claimable pool, floored at zero.
func Unclaimed(tasks []model.Task, p model.Profile) int {
	n := TotalDone(tasks) - p.ClaimedCheckCount
	if n < 0 {
		return 0
	}
	return n
}

// Claim moves the whole claimable pool into the wallet and snapshots the
// done count. ClaimedCheckCount only ever ratchets upward, so unchecking a
// claimed day never takes coins back. With nothing to claim the profile is
// returned unchanged.
func Claim(tasks []model.Task, p model.Profile) (model.Profile, int) {
	ready := Unclaimed(tasks, p)
	if ready <= 0 {
		return p, 0
	}
	out := p.Clone()
	out.Wallet += ready
	out.ClaimedCheckCount = TotalDone(tasks)
	return out, ready
}
