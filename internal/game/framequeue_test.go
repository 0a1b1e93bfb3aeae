package game

import (
	"testing"

	"github.com/iburimskiy/bgfield/internal/config"
)

func TestFrameQueueDefersNestedRequests(t *testing.T) {
	var q FrameQueue
	calls := 0
	var tick func()
	tick = func() {
		calls++
		q.RequestFrame(tick)
	}
	q.RequestFrame(tick)

	for i := 1; i <= 3; i++ {
		if ran := q.Flush(); ran != 1 {
			t.Fatalf("flush %d: ran %d, want 1", i, ran)
		}
		if calls != i {
			t.Fatalf("calls after flush %d: got %d, want %d", i, calls, i)
		}
	}
}

func TestFrameQueueCancel(t *testing.T) {
	var q FrameQueue
	ran := false
	cancel := q.RequestFrame(func() { ran = true })
	q.RequestFrame(func() {})

	cancel()
	cancel()

	if q.Len() != 1 {
		t.Errorf("Len: got %d, want 1", q.Len())
	}
	if n := q.Flush(); n != 1 {
		t.Errorf("Flush: got %d, want 1", n)
	}
	if ran {
		t.Error("cancelled callback ran")
	}
	if q.Flush() != 0 {
		t.Error("empty queue ran callbacks")
	}
}

func TestViewportNotifiesOnChange(t *testing.T) {
	vp := NewViewport(100, 100)
	calls := 0
	cancel := vp.Observe(func() { calls++ })

	if vp.SetSize(100, 100) {
		t.Error("SetSize with identical size reported a change")
	}
	vp.SetSize(200, 100)
	vp.SetSize(200, 50)
	if calls != 2 {
		t.Errorf("notifications: got %d, want 2", calls)
	}

	cancel()
	vp.SetSize(1, 1)
	if calls != 2 {
		t.Errorf("notification after cancel: got %d calls, want 2", calls)
	}
}

func TestPanelContainer(t *testing.T) {
	vp := NewViewport(1000, 400)
	right := vp.Panel(config.Panel{X: 0.5, Y: 0.25, W: 0.5, H: 0.5})

	if w, h := right.Bounds(); w != 500 || h != 200 {
		t.Errorf("Bounds: got %vx%v, want 500x200", w, h)
	}
	if x, y := right.Origin(); x != 500 || y != 100 {
		t.Errorf("Origin: got (%v, %v), want (500, 100)", x, y)
	}

	notified := false
	right.Observe(func() { notified = true })
	vp.SetSize(800, 400)
	if !notified {
		t.Error("panel observer not notified on viewport resize")
	}
	if w, _ := right.Bounds(); w != 400 {
		t.Errorf("Bounds width after resize: got %v, want 400", w)
	}
}

func TestPanelsAnimateIndependently(t *testing.T) {
	var q FrameQueue
	vp := NewViewport(2000, 1000)
	left, right := &fakeSurface{}, &fakeSurface{}
	targets := []Target{
		{Container: vp.Panel(config.Panel{W: 0.5, H: 1}), Surface: left},
		{Container: vp.Panel(config.Panel{X: 0.5, W: 0.5, H: 1}), Surface: right},
	}
	handles := Init(targets, false, &q, seeded())

	if left.w != 1000 || right.w != 1000 {
		t.Fatalf("panel widths: got %d and %d, want 1000", left.w, right.w)
	}
	handles[0].Stop()
	q.Flush()
	q.Flush()

	if left.clears != 1 {
		t.Errorf("stopped panel clears: got %d, want 1", left.clears)
	}
	if right.clears != 3 {
		t.Errorf("running panel clears: got %d, want 3", right.clears)
	}
}
