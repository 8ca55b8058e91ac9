package h2h

import "testing"

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		a, b    int
		want    Result
		diff    int
		pointsA int
		pointsB int
	}{
		{name: "a wins", a: 72, b: 65, want: ResultWinA, diff: 7, pointsA: 3, pointsB: 0},
		{name: "b wins", a: 40, b: 58, want: ResultWinB, diff: 18, pointsA: 0, pointsB: 3},
		{name: "draw", a: 51, b: 51, want: ResultDraw, diff: 0, pointsA: 1, pointsB: 1},
		{name: "negative scores", a: -4, b: 0, want: ResultWinB, diff: 4, pointsA: 0, pointsB: 3},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Resolve(tc.a, tc.b)
			if got.Result != tc.want {
				t.Fatalf("result got=%q want=%q", got.Result, tc.want)
			}
			if got.Differential != tc.diff {
				t.Fatalf("differential got=%d want=%d", got.Differential, tc.diff)
			}
			if p := got.LeaguePoints(SideA); p != tc.pointsA {
				t.Fatalf("points A got=%d want=%d", p, tc.pointsA)
			}
			if p := got.LeaguePoints(SideB); p != tc.pointsB {
				t.Fatalf("points B got=%d want=%d", p, tc.pointsB)
			}
		})
	}
}

func TestResolve_ExactlyOneResult(t *testing.T) {
	t.Parallel()

	for a := -10; a <= 30; a++ {
		for b := -10; b <= 30; b++ {
			got := Resolve(a, b)
			total := got.LeaguePoints(SideA) + got.LeaguePoints(SideB)
			if got.Result == ResultDraw && total != 2 {
				t.Fatalf("a=%d b=%d draw must award 1 each, got total=%d", a, b, total)
			}
			if got.Result != ResultDraw && total != 3 {
				t.Fatalf("a=%d b=%d decisive result must award 3, got total=%d", a, b, total)
			}
			want := a - b
			if want < 0 {
				want = -want
			}
			if got.Differential != want {
				t.Fatalf("a=%d b=%d differential got=%d want=%d", a, b, got.Differential, want)
			}
		}
	}
}

func TestResolveAll(t *testing.T) {
	t.Parallel()

	fixtures := ResolveAll(8, []Pairing{{EntryA: 1, EntryB: 2}, {EntryA: 3, EntryB: 4}}, map[int]int{1: 50, 2: 45, 3: 30})
	if len(fixtures) != 2 {
		t.Fatalf("fixtures got=%d want=2", len(fixtures))
	}
	if fixtures[0].Outcome.Letter(SideA) != "W" || fixtures[0].Outcome.Letter(SideB) != "L" {
		t.Fatalf("unexpected letters for fixture 0: %+v", fixtures[0].Outcome)
	}
	if fixtures[1].ScoreB != 0 || fixtures[1].Outcome.Result != ResultWinA {
		t.Fatalf("missing score should count as zero, got %+v", fixtures[1])
	}
	if side, ok := fixtures[1].SideOf(4); !ok || side != SideB {
		t.Fatalf("side of 4 got=%v ok=%v", side, ok)
	}
	if fixtures[1].Opponent(4) != 3 {
		t.Fatalf("opponent of 4 got=%d want=3", fixtures[1].Opponent(4))
	}
}
