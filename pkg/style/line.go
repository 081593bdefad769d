package style

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer 向同一个 writer 输出带样式的行
type Printer struct {
	w       io.Writer
	heading lipgloss.Style
	success lipgloss.Style
	danger  lipgloss.Style
	path    lipgloss.Style
	detail  lipgloss.Style
}

// NewPrinter 创建一个 Printer，颜色能力按 w 自动探测
func NewPrinter(w io.Writer) *Printer {
	re := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		heading: re.NewStyle().Foreground(ColorAccentPrimary).Bold(true),
		success: re.NewStyle().Foreground(ColorSuccess),
		danger:  re.NewStyle().Foreground(ColorDanger),
		path:    re.NewStyle().Foreground(ColorText).Bold(true),
		detail:  re.NewStyle().Foreground(ColorText),
	}
}

// Writer 返回底层 writer
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Line 打印一行普通文本
func (p *Printer) Line(text string) error {
	_, err := fmt.Fprintln(p.w, text)
	return err
}

// Heading 打印区块标题
func (p *Printer) Heading(text string) error {
	return p.Line(p.heading.Render(text))
}

// Success 打印成功信息
func (p *Printer) Success(text string) error {
	return p.Line(p.success.Render(text))
}

// Danger 打印失败/未达标信息
func (p *Printer) Danger(text string) error {
	return p.Line(p.danger.Render(text))
}

// Path 打印文件路径
func (p *Printer) Path(text string) error {
	return p.Line(p.path.Render(text))
}

// Detail 打印明细行
func (p *Printer) Detail(text string) error {
	return p.Line(p.detail.Render(text))
}
