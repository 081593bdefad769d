// Package style 提供终端样式化输出功能
// 所有样式都通过与 writer 绑定的 lipgloss.Renderer 渲染，非终端输出时自动退化为纯文本
package style

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	xterm "github.com/charmbracelet/x/term"
)

const (
	// 主题强调色，用于标题
	ColorAccentPrimary = lipgloss.Color("#33A1FF")

	// 主要文本颜色
	ColorText = lipgloss.Color("#E4E4E4")

	// 边框颜色
	ColorBorder = lipgloss.Color("238")

	// 未达标
	ColorDanger = lipgloss.Color("#FF5555")

	// 达标
	ColorSuccess = lipgloss.Color("#22C55E")
)

// IsTerminal 判断 writer 是否为终端
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && xterm.IsTerminal(f.Fd())
}
