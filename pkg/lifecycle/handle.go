package lifecycle

import (
	"context"
	"sync"
	"time"
)

// Handle 是单个后台服务的生命周期句柄。
// 服务通过 Done/Sleep 感知停机信号，并在Goroutine退出前调用 Close
// （通常用 defer）向Manager确认自己已经结束。
type Handle struct {
	ctx      context.Context
	finished chan struct{}
	once     sync.Once
}

// Close 向Manager确认服务已经退出。可以安全地重复调用。
func (h *Handle) Close() {
	h.once.Do(func() {
		close(h.finished)
	})
}

// Ctx 返回与Manager停机信号绑定的上下文
func (h *Handle) Ctx() context.Context {
	return h.ctx
}

// Done 返回一个channel，Manager发出停机信号时该channel关闭。
func (h *Handle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Err 在Done()的channel关闭后返回取消原因。
func (h *Handle) Err() error {
	return h.ctx.Err()
}

// Sleep 暂停指定的时长；停机信号到来时提前返回取消错误。
// 后台定时循环应该用它代替time.Sleep，否则停机要等完整个周期。
func (h *Handle) Sleep(duration time.Duration) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-h.ctx.Done():
		return h.ctx.Err()
	case <-timer.C:
		return nil
	}
}
