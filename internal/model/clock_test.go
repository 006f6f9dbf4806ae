package model

import (
	"testing"
	"time"

	"github.com/benbeisheim/chessai-backend/internal/testutil"
)

func TestClockAccumulates(t *testing.T) {
	now := time.Unix(0, 0)
	c := NewClock()
	c.now = func() time.Time { return now }

	c.Start()
	now = now.Add(3 * time.Second)
	testutil.AssertEqual(t, c.Used(), 3*time.Second)
	c.Stop()

	now = now.Add(time.Minute)
	testutil.AssertEqual(t, c.Used(), 3*time.Second)

	c.Start()
	c.Start()
	now = now.Add(2 * time.Second)
	c.Stop()
	testutil.AssertEqual(t, c.Used(), 5*time.Second)

	c.Reset()
	testutil.AssertEqual(t, c.Used(), time.Duration(0))
}
