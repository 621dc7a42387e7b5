package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight[[]byte]
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	var shared atomic.Int32
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			body, err, dup := g.Do("/en/matches/cc5b4244/", func() ([]byte, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return []byte("<html/>"), nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if string(body) != "<html/>" {
				t.Errorf("unexpected body %q", body)
			}
			if dup {
				shared.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&counter))
	assert.LessOrEqual(t, shared.Load(), int32(workers-1))
}

func TestSingleFlight_ForgetsKeyAfterError(t *testing.T) {
	var g SingleFlight[int]
	boom := errors.New("boom")

	_, err, _ := g.Do("k", func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	v, err, dup := g.Do("k", func() (int, error) { return 7, nil })
	assert.NoError(t, err)
	assert.False(t, dup)
	assert.Equal(t, 7, v)
}
