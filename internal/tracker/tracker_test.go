package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"vicmoney/internal/core"
)

func mustApply(t *testing.T, tr *Tracker, s string) View {
	t.Helper()
	a, err := ParseAction(s)
	if err != nil {
		t.Fatalf("ParseAction(%q): %v", s, err)
	}
	v, err := tr.Apply(context.Background(), a)
	if err != nil {
		t.Fatalf("Apply(%q): %v", s, err)
	}
	return v
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr error
	}{
		{"increment:pounds", Action{Increment, core.Pound}, nil},
		{"decrement:penny", Action{Decrement, core.Penny}, nil},
		{"convert-down:Crowns", Action{ConvertDown, core.Crown}, nil},
		{" convert-up:farthing ", Action{ConvertUp, core.Farthing}, nil},
		{"double:pounds", Action{}, ErrUnknownAction},
		{"increment", Action{}, ErrUnknownAction},
		{"increment:guineas", Action{}, core.ErrUnknownUnit},
	}
	for _, tt := range tests {
		got, err := ParseAction(tt.in)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseAction(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAction(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestActionString(t *testing.T) {
	a := Action{Kind: ConvertUp, Unit: core.Penny}
	if a.String() != "convert-up:pence" {
		t.Errorf("String() = %q", a.String())
	}
}

func TestNewTrackerIsEmpty(t *testing.T) {
	v := New(nil).Snapshot()
	if v.Total != "Nil" {
		t.Errorf("Total = %q, want Nil", v.Total)
	}
	if len(v.Rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(v.Rows))
	}
	for _, r := range v.Rows {
		if r.Count != 0 || r.CanDecrement || r.CanConvertDown || r.CanConvertUp {
			t.Errorf("row %s not empty: %+v", r.Name, r)
		}
	}
	if v.Row(core.Penny).Label != "pence" {
		t.Errorf("penny label = %q", v.Row(core.Penny).Label)
	}
}

func TestApplySequence(t *testing.T) {
	tr := New(nil)

	mustApply(t, tr, "increment:pounds")
	mustApply(t, tr, "increment:pounds")
	v := mustApply(t, tr, "increment:shillings")
	if v.Total != "£2 1s" {
		t.Fatalf("Total = %q, want £2 1s", v.Total)
	}

	v = mustApply(t, tr, "convert-down:pounds")
	if got := v.Row(core.Crown).Count; got != 4 {
		t.Fatalf("crowns = %d, want 4", got)
	}
	if !v.Row(core.Crown).CanConvertUp {
		t.Fatal("4 crowns should convert up")
	}

	v = mustApply(t, tr, "convert-up:crowns")
	if v.Total != "£2 1s" {
		t.Fatalf("round trip Total = %q, want £2 1s", v.Total)
	}
	if v.Version != 5 {
		t.Errorf("Version = %d, want 5", v.Version)
	}
}

func TestApplyRejectsDisabledAffordances(t *testing.T) {
	tr := New(nil)
	mustApply(t, tr, "increment:crowns")
	mustApply(t, tr, "increment:crowns")
	mustApply(t, tr, "increment:crowns")

	for _, s := range []string{"decrement:pounds", "convert-down:pounds", "convert-up:crowns", "convert-down:farthings", "convert-up:pounds"} {
		a, _ := ParseAction(s)
		before := tr.Snapshot()
		v, err := tr.Apply(context.Background(), a)
		if !errors.Is(err, ErrActionDisabled) {
			t.Errorf("%s: error = %v, want ErrActionDisabled", s, err)
		}
		if v.Total != before.Total || v.Version != before.Version {
			t.Errorf("%s changed state: %+v -> %+v", s, before, v)
		}
		if before.Enabled(a) {
			t.Errorf("%s reported as enabled", s)
		}
	}
	if got := tr.Snapshot().Row(core.Crown).Count; got != 3 {
		t.Errorf("crowns = %d, want 3", got)
	}
}

func TestApplyUnknownKind(t *testing.T) {
	tr := New(nil)
	_, err := tr.Apply(context.Background(), Action{Kind: "double", Unit: core.Pound})
	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("error = %v, want ErrUnknownAction", err)
	}
	_, err = tr.Apply(context.Background(), Action{Kind: Increment, Unit: core.Unit(9)})
	if !errors.Is(err, core.ErrUnknownUnit) {
		t.Errorf("error = %v, want ErrUnknownUnit", err)
	}
}

func TestViewFlagsMirrorModel(t *testing.T) {
	tr := New(nil)
	for i := 0; i < 12; i++ {
		mustApply(t, tr, "increment:pence")
	}
	v := tr.Snapshot()
	r := v.Row(core.Penny)
	if r.Formatted != "12d" || r.Label != "pence" {
		t.Errorf("penny row = %+v", r)
	}
	if !r.CanConvertUp || !r.CanConvertDown || !r.CanDecrement || !r.HasUp || !r.HasDown {
		t.Errorf("penny flags = %+v", r)
	}
	if v.Row(core.Pound).HasUp || v.Row(core.Farthing).HasDown {
		t.Error("chain ends should not offer conversions")
	}
	if !v.Enabled(Action{Kind: Increment, Unit: core.Pound}) {
		t.Error("increment should always be enabled")
	}
}

func TestApplyConcurrent(t *testing.T) {
	tr := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = tr.Apply(context.Background(), Action{Kind: Increment, Unit: core.Farthing})
		}()
	}
	wg.Wait()

	v := tr.Snapshot()
	if got := v.Row(core.Farthing).Count; got != 50 {
		t.Errorf("farthings = %d, want 50", got)
	}
	if v.Version != 50 {
		t.Errorf("Version = %d, want 50", v.Version)
	}
}
