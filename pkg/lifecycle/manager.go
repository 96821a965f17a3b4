package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Manager 协调后台服务的启动登记和停机等待。
// 每个服务在启动前登记一个Handle；停机时Manager广播取消信号，
// 然后按每个Handle各自的完成通道等待退出。
type Manager struct {
	mu      sync.Mutex
	handles map[string]*Handle

	ctx    context.Context
	cancel context.CancelFunc
}

// NewManager 创建一个新的生命周期管理器。
func NewManager() *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		handles: make(map[string]*Handle),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// NewServiceHandle 登记一个后台服务并返回它的生命周期句柄。
// 服务名用于停机日志和重复登记检测，进程内唯一。
func (m *Manager) NewServiceHandle(name string) (*Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.handles[name]; exists {
		return nil, fmt.Errorf("生命周期管理器: 服务 '%s' 已被注册", name)
	}

	h := &Handle{
		ctx:      m.ctx,
		finished: make(chan struct{}),
	}
	m.handles[name] = h
	fmt.Printf("生命周期管理器: 服务 [%s] 已注册。\n", name)
	return h, nil
}

// Shutdown 广播停机信号，通知所有持有句柄的服务退出。
func (m *Manager) Shutdown() {
	fmt.Println("生命周期管理器: 广播停机信号...")
	m.cancel()
}

// WaitWithTimeout 等待所有已登记的服务完成，直到指定的超时。
// 返回超时后仍未退出的服务名列表，全部退出时返回nil。
func (m *Manager) WaitWithTimeout(timeout time.Duration) []string {
	m.mu.Lock()
	pending := make(map[string]*Handle, len(m.handles))
	for name, h := range m.handles {
		pending[name] = h
	}
	m.mu.Unlock()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	var remaining []string
	expired := false
	for name, h := range pending {
		if expired {
			// 超时已经发生，对剩下的句柄只做非阻塞探测
			select {
			case <-h.finished:
			default:
				remaining = append(remaining, name)
			}
			continue
		}
		select {
		case <-h.finished:
		case <-deadline.C:
			expired = true
			remaining = append(remaining, name)
		}
	}
	return remaining
}
