package translate

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// flight coalesces identical in-flight translations.
//
// The shared work runs under a context detached from every caller. It is cancelled
// only when the last waiting caller has left, so one caller giving up never changes
// the result another caller receives.
type flight struct {
	group singleflight.Group

	mu    sync.Mutex
	calls map[string]*flightCall
}

type flightCall struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// do runs fn once among concurrent callers using the same key. Each caller waits only
// as long as its own ctx allows; ok is false when ctx ended first.
func (f *flight) do(ctx context.Context, key string, fn func(context.Context) Result) (res Result, shared, ok bool) {
	call := f.join(ctx, key)
	defer f.leave(key, call)

	ch := f.group.DoChan(key, func() (any, error) {
		return fn(call.ctx), nil
	})
	select {
	case r := <-ch:
		return r.Val.(Result), r.Shared, true
	case <-ctx.Done():
		return Result{}, false, false
	}
}

func (f *flight) join(ctx context.Context, key string) *flightCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.calls == nil {
		f.calls = make(map[string]*flightCall)
	}
	call, ok := f.calls[key]
	if !ok {
		workCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		call = &flightCall{ctx: workCtx, cancel: cancel}
		f.calls[key] = call
	}
	call.waiters++
	return call
}

// leave drops one waiter. The last one cancels the work and forgets the key, so a
// later caller starts fresh instead of joining work that is being torn down.
func (f *flight) leave(key string, call *flightCall) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call.waiters--
	if call.waiters > 0 {
		return
	}
	call.cancel()
	delete(f.calls, key)
	f.group.Forget(key)
}

// flightKey encodes (useRemote, command, output) without ambiguity: the command is
// length-prefixed, so no choice of separator inside it can shift the boundary.
func flightKey(command, output string, useRemote bool) string {
	flag := "0"
	if useRemote {
		flag = "1"
	}
	return flag + strconv.Itoa(len(command)) + ":" + command + output
}
