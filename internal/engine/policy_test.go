package engine

import "testing"

type fixedRoller float64

func (f fixedRoller) Float64() float64 { return float64(f) }

type countingRoller struct {
	v     float64
	calls int
}

func (c *countingRoller) Float64() float64 {
	c.calls++
	return c.v
}

func TestChooseAction_Branches(t *testing.T) {
	healthy := func(d, count int) PolicyView {
		return PolicyView{OpponentHP: 1200, OpponentMaxHP: 1200, PlayerHP: 1400, PlayerMaxHP: 1400, OpponentAttackCount: count, OpponentSpecialRequired: 5, Difficulty: d}
	}
	lowOpp := func(d, count int) PolicyView {
		v := healthy(d, count)
		v.OpponentHP = 300
		return v
	}
	lowPlayer := func(d, count int) PolicyView {
		v := healthy(d, count)
		v.PlayerHP = 300
		return v
	}

	cases := []struct {
		name string
		view PolicyView
		roll float64
		want ActionKind
	}{
		{"low hp defends", lowOpp(1, 0), 0.50, ActionDefend},
		{"low hp roll past defend bias attacks", lowOpp(1, 0), 0.60, ActionAttack},
		{"uncharged high roll defends", healthy(1, 0), 0.83, ActionDefend},
		{"uncharged low roll attacks", healthy(1, 2), 0.10, ActionAttack},
		{"charged finisher special", lowPlayer(1, 5), 0.40, ActionSpecial},
		{"charged finisher roll past bias attacks", lowPlayer(1, 5), 0.50, ActionAttack},
		{"charged healthy high roll special", healthy(1, 5), 0.70, ActionSpecial},
		{"charged healthy low roll attacks", healthy(1, 5), 0.62, ActionAttack},
		{"d10 rarely defends when low", lowOpp(10, 0), 0.30, ActionAttack},
		{"d10 finisher special", lowPlayer(10, 5), 0.85, ActionSpecial},
		{"d10 uncharged defends above threshold", healthy(10, 0), 0.60, ActionDefend},
		{"d10 charged attacks below threshold", healthy(10, 6), 0.80, ActionAttack},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ChooseAction(tc.view, fixedRoller(tc.roll)); got != tc.want {
				t.Fatalf("ChooseAction(roll=%v)=%s, want %s", tc.roll, got, tc.want)
			}
		})
	}
}

func TestChooseAction_NeverSpecialWhenUncharged(t *testing.T) {
	for d := 1; d <= MaxDifficulty; d++ {
		for r := 0.0; r < 1.0; r += 0.01 {
			v := PolicyView{OpponentHP: 100, OpponentMaxHP: 1200, PlayerHP: 50, PlayerMaxHP: 1400, OpponentAttackCount: 4, OpponentSpecialRequired: 5, Difficulty: d}
			if ChooseAction(v, fixedRoller(r)) == ActionSpecial {
				t.Fatalf("special chosen while uncharged (d=%d r=%v)", d, r)
			}
		}
	}
}

func TestChooseAction_DrawsOnce(t *testing.T) {
	r := &countingRoller{v: 0.5}
	ChooseAction(PolicyView{OpponentHP: 10, OpponentMaxHP: 100, PlayerHP: 10, PlayerMaxHP: 100, OpponentAttackCount: 5, OpponentSpecialRequired: 5, Difficulty: 3}, r)
	if r.calls != 1 {
		t.Fatalf("expected exactly one roll, got %d", r.calls)
	}
}
