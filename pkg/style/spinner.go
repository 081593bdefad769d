package style

import (
	"fmt"
	"io"
	"time"
)

// Spinner 是一个简单的终端旋转指示器
// 只在终端上动画，非终端 writer 上 Start/Stop 不输出任何内容
type Spinner struct {
	out      io.Writer
	msg      string
	enabled  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	interval time.Duration
}

// NewSpinner 创建一个新的 Spinner
// out: 写入目标（一般为 cmd.OutOrStdout()）
// msg: 前缀消息
func NewSpinner(out io.Writer, msg string) *Spinner {
	return &Spinner{
		out:      out,
		msg:      msg,
		enabled:  IsTerminal(out),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		interval: 120 * time.Millisecond,
	}
}

// Start 启动 spinner，直到 Stop 被调用
func (s *Spinner) Start() {
	if !s.enabled {
		close(s.doneCh)
		return
	}
	go func() {
		defer close(s.doneCh)
		frames := []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}
		i := 0
		_, _ = fmt.Fprintf(s.out, "%s %c\r", s.msg, frames[i])
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stopCh:
				// 清除动画行，后续输出从行首开始
				_, _ = fmt.Fprintf(s.out, "\r\x1b[K")
				return
			case <-ticker.C:
				i = (i + 1) % len(frames)
				_, _ = fmt.Fprintf(s.out, "%s %c\r", s.msg, frames[i])
			}
		}
	}()
}

// Stop 停止 spinner，可重复调用
func (s *Spinner) Stop() {
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	<-s.doneCh
}
