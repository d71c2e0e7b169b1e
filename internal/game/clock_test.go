package game

import (
	"errors"
	"testing"
	"time"

	"github.com/benbeisheim/chessrules/internal/model"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }

func TestClock(t *testing.T) {
	t.Parallel()
	fake := &fakeClock{now: time.Unix(0, 0)}
	c := newClock(time.Minute, fake.Now)

	fake.advance(10 * time.Second)
	if got := c.GetTimeLeft(); got != time.Minute {
		t.Errorf("stopped clock ran: %s left", got)
	}

	c.Start()
	fake.advance(15 * time.Second)
	if got := c.GetTimeLeft(); got != 45*time.Second {
		t.Errorf("running clock shows %s, want 45s", got)
	}
	c.Stop()
	fake.advance(time.Hour)
	if got := c.GetTimeLeft(); got != 45*time.Second {
		t.Errorf("stopped clock shows %s, want 45s", got)
	}

	c.Start()
	fake.advance(50 * time.Second)
	if !c.Expired() {
		t.Error("flag should have fallen")
	}
	c.Reset()
	if got := c.GetTimeLeft(); got != time.Minute || c.Expired() {
		t.Errorf("reset clock shows %s", got)
	}
}

func TestGameClockHandOver(t *testing.T) {
	t.Parallel()
	fake := &fakeClock{now: time.Unix(0, 0)}
	g := newTestGame(t, WithClock(10*time.Second), withNow(fake.Now))

	if _, ok := newTestGame(t).TimeLeft(model.White); ok {
		t.Error("untimed game reports a clock")
	}

	fake.advance(time.Minute)
	play(t, g, "e2e4")
	fake.advance(3 * time.Second)
	play(t, g, "e7e5")

	if got, _ := g.TimeLeft(model.White); got != 10*time.Second {
		t.Errorf("white has %s, want the full 10s before its second move", got)
	}
	if got, _ := g.TimeLeft(model.Black); got != 7*time.Second {
		t.Errorf("black has %s, want 7s", got)
	}

	fake.advance(11 * time.Second)
	if g.Move(model.MustPosition("g1"), model.MustPosition("f3")).Accepted {
		t.Fatal("move accepted after white's flag fell")
	}
	state := g.GetState()
	if state.Resolve != ResolveTimeout || state.Winner != model.Black {
		t.Errorf("resolve=%q winner=%s, want timeout won by black", state.Resolve, state.Winner)
	}
	if !g.IsOver() {
		t.Error("game should be over")
	}
}

func TestFlagFallsOnAnyAttempt(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		attempt func(t *testing.T, g *Game)
	}{
		{
			name: "illegal move",
			attempt: func(t *testing.T, g *Game) {
				if g.Move(model.MustPosition("e1"), model.MustPosition("e3")).Accepted {
					t.Error("illegal move accepted")
				}
			},
		},
		{
			name: "candidate destinations",
			attempt: func(t *testing.T, g *Game) {
				idx, _, _ := g.PieceAt(model.MustPosition("g1"))
				if got := g.GetCandidateDestinations(idx); len(got) != 0 {
					t.Errorf("flagged side offered %v", got)
				}
			},
		},
		{
			name: "hints",
			attempt: func(t *testing.T, g *Game) {
				idx, _, _ := g.PieceAt(model.MustPosition("g1"))
				if got := g.Hints(idx); len(got) != 0 {
					t.Errorf("flagged side offered %v", got)
				}
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fake := &fakeClock{now: time.Unix(0, 0)}
			g := newTestGame(t, WithClock(10*time.Second), withNow(fake.Now))
			play(t, g, "e2e4", "e7e5")
			fake.advance(11 * time.Second)

			tt.attempt(t, g)

			state := g.GetState()
			if state.Resolve != ResolveTimeout || state.Winner != model.Black {
				t.Errorf("resolve=%q winner=%s, want timeout won by black", state.Resolve, state.Winner)
			}
		})
	}
}

func TestPendingPromotionRunsMoverClock(t *testing.T) {
	t.Parallel()
	setup := func(t *testing.T) (*Game, *fakeClock) {
		t.Helper()
		fake := &fakeClock{now: time.Unix(0, 0)}
		g := newTestGame(t, WithClock(10*time.Second), withNow(fake.Now), WithFEN("4k3/8/1P6/8/8/8/8/4K3 w - - 0 1"))
		play(t, g, "b6b7")
		fake.advance(2 * time.Second)
		play(t, g, "e8e7")
		fake.advance(2 * time.Second)
		if res := play(t, g, "b7b8"); !res.PromotionPending {
			t.Fatalf("b7b8 should wait for a promotion, got %+v", res)
		}
		return g, fake
	}

	t.Run("resolved in time", func(t *testing.T) {
		t.Parallel()
		g, fake := setup(t)
		fake.advance(3 * time.Second)
		if got, _ := g.TimeLeft(model.White); got != 5*time.Second {
			t.Errorf("white has %s while choosing, want 5s", got)
		}
		if _, err := g.ResolvePromotion(model.MustPosition("b8"), model.Queen); err != nil {
			t.Fatal(err)
		}
		fake.advance(time.Second)
		if got, _ := g.TimeLeft(model.White); got != 5*time.Second {
			t.Errorf("white has %s after promoting, want 5s", got)
		}
		if got, _ := g.TimeLeft(model.Black); got != 7*time.Second {
			t.Errorf("black has %s, want 7s", got)
		}
	})

	t.Run("stalled past the flag", func(t *testing.T) {
		t.Parallel()
		g, fake := setup(t)
		fake.advance(time.Minute)
		if _, err := g.ResolvePromotion(model.MustPosition("b8"), model.Queen); !errors.Is(err, ErrGameOver) {
			t.Errorf("ResolvePromotion error = %v, want ErrGameOver", err)
		}
		state := g.GetState()
		if state.Resolve != ResolveTimeout || state.Winner != model.Black {
			t.Errorf("resolve=%q winner=%s, want timeout won by black", state.Resolve, state.Winner)
		}
	})
}
