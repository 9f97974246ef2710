package acquire

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, a *Acquirer) []Measurement {
	t.Helper()
	var got []Measurement
	for m := range a.Measurements() {
		got = append(got, m)
	}
	return got
}

func TestParsesLineStream(t *testing.T) {
	r, w := io.Pipe()
	a := New(r, zerolog.Nop())

	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(context.Background()) }()

	_, err := w.Write([]byte("1.00,7\n2.00,3\r\n\n3.00,0\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got := collect(t, a)
	require.NoError(t, <-errCh)
	require.Len(t, got, 3)
	assert.Equal(t, 1.00, got[0].Elapsed)
	assert.Equal(t, uint32(7), got[0].Count)
	assert.Equal(t, uint32(3), got[1].Count, "CR before LF must be tolerated")
	assert.Equal(t, uint32(0), got[2].Count)
	assert.Equal(t, uint64(0), a.BadLines())
}

func TestGarbageLinesDropped(t *testing.T) {
	r, w := io.Pipe()
	a := New(r, zerolog.Nop())

	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(context.Background()) }()

	_, err := w.Write([]byte("\x00\xffgarbage\n1.00,2\nalso,bad\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got := collect(t, a)
	require.NoError(t, <-errCh)
	require.Len(t, got, 1)
	assert.Equal(t, uint32(2), got[0].Count)
	assert.Equal(t, uint64(2), a.BadLines())
}

func TestCancelClosesPort(t *testing.T) {
	r, _ := io.Pipe() // writer never writes: Run blocks on read
	a := New(r, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
