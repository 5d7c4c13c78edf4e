package helper

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackgroundTask_WaitsAndRecovers(t *testing.T) {
	var wg sync.WaitGroup
	h := New("http://localhost:4444", &wg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var ran atomic.Int32
	h.BackgroundTask(func() error {
		ran.Add(1)
		return nil
	})
	h.BackgroundTask(func() error {
		ran.Add(1)
		return errors.New("failed")
	})
	h.BackgroundTask(func() error {
		ran.Add(1)
		panic("boom")
	})

	wg.Wait()
	assert.Equal(t, int32(3), ran.Load())
	assert.Equal(t, "http://localhost:4444", h.NewEmailData()["BaseURL"])
}
