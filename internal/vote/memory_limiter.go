package vote

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/keepcut/keepcut-backend/pkg/lifecycle"
)

// MemoryLimiter 是进程内的固定窗口限流器，作为分布式层的兜底。
// 它没有任何外部依赖，是唯一保证不会fail-open的一层，专门用来
// 在Redis故障或抖动期间吸收突发流量。
//
// 在多实例部署下每个进程各数各的，只是尽力而为的本地防线，
// 不能替代分布式层——这是刻意保留的不对称，不要试图做全局一致。
type MemoryLimiter struct {
	mu      sync.Mutex
	records map[string]*memoryRecord
	limit   int
	window  time.Duration
	clock   clockwork.Clock
}

// memoryRecord 的生命周期：首次命中时创建，窗口结束后过期；
// 过期记录在下次命中时被重置，或由清扫循环回收。
type memoryRecord struct {
	count     int
	resetTime time.Time
}

// NewMemoryLimiter 创建一个进程内限流器，每个进程构造一次。
func NewMemoryLimiter(limit int, window time.Duration, clock clockwork.Clock) *MemoryLimiter {
	return &MemoryLimiter{
		records: make(map[string]*memoryRecord),
		limit:   limit,
		window:  window,
		clock:   clock,
	}
}

// Allow 判断key对应的请求是否放行，并记入本次命中。
// 并发安全；check-then-increment在互斥锁内完成，不会被抢占打断。
func (l *MemoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	rec, ok := l.records[key]
	if !ok || now.After(rec.resetTime) {
		l.records[key] = &memoryRecord{count: 1, resetTime: now.Add(l.window)}
		return true
	}

	if rec.count >= l.limit {
		return false
	}
	rec.count++
	return true
}

// Sweep 清理已过期的计数记录，返回回收的数量。
func (l *MemoryLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	removed := 0
	for key, rec := range l.records {
		if now.After(rec.resetTime) {
			delete(l.records, key)
			removed++
		}
	}
	return removed
}

// janitorInterval 是清扫循环的间隔。窗口只有秒级，过期记录本身无害，
// 清扫只是防止map随IP数量无限增长。
const janitorInterval = time.Minute

// RunJanitor 周期性清扫过期记录，直到生命周期句柄被取消。
func (l *MemoryLimiter) RunJanitor(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("内存限流清扫器已启动。")

	for {
		if err := handle.Sleep(janitorInterval); err != nil {
			fmt.Println("内存限流清扫器已退出。")
			return
		}
		l.Sweep()
	}
}
