package check

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yeisme/covgap/pkg/configs"
	"github.com/yeisme/covgap/pkg/style"
)

// Render 按格式输出检查结果
func Render(w io.Writer, result *Result, format configs.OutputFormat) error {
	switch format {
	case configs.FormatText, "":
		return renderText(w, result)
	case configs.FormatTable:
		return renderTable(w, result)
	default:
		return configs.OutputData(result, format, w)
	}
}

// FormatPercent 格式化百分比，整数值保留一位小数，例如 50.0、33.33
func FormatPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// formatDimension 格式化一个维度的百分比，没有可计数项的维度输出整数 100
func formatDimension(v float64, total int) string {
	if total == 0 {
		return "100"
	}
	return FormatPercent(v)
}

func renderText(w io.Writer, result *Result) error {
	p := style.NewPrinter(w)

	if err := p.Line(""); err != nil {
		return err
	}
	if err := p.Heading(fmt.Sprintf("=== Coverage Report for: %s ===", result.Folder)); err != nil {
		return err
	}

	if len(result.Files) == 0 {
		return p.Success("✅ All files in the specified folder have 100% coverage!")
	}

	if err := p.Danger(fmt.Sprintf("❌ Found %d files with incomplete coverage:", len(result.Files))); err != nil {
		return err
	}
	if err := p.Line(""); err != nil {
		return err
	}
	for _, f := range result.Files {
		if err := p.Path("📄" + f.File); err != nil {
			return err
		}
		line := fmt.Sprintf("   Functions: %s%% | Statements: %s%% | Branches: %s%%",
			formatDimension(f.Summary.Functions, f.Totals.Functions),
			formatDimension(f.Summary.Statements, f.Totals.Statements),
			formatDimension(f.Summary.Branches, f.Totals.Branches))
		if err := p.Detail(line); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, result *Result) error {
	p := style.NewPrinter(w)
	if err := p.Heading(fmt.Sprintf("=== Coverage Report for: %s ===", result.Folder)); err != nil {
		return err
	}
	if len(result.Files) == 0 {
		return p.Success("✅ All files in the specified folder have 100% coverage!")
	}

	rows := make([][]string, 0, len(result.Files))
	for _, f := range result.Files {
		rows = append(rows, []string{
			f.File,
			formatDimension(f.Summary.Functions, f.Totals.Functions),
			formatDimension(f.Summary.Statements, f.Totals.Statements),
			formatDimension(f.Summary.Branches, f.Totals.Branches),
		})
	}

	re := lipgloss.NewRenderer(w)
	full := re.NewStyle().Foreground(style.ColorSuccess)
	short := re.NewStyle().Foreground(style.ColorDanger)

	return style.PrintTable(w, []string{"file", "functions", "statements", "branches"}, rows, 0,
		func(row, col int, base lipgloss.Style) lipgloss.Style {
			if col == 0 || row < 0 || row >= len(rows) {
				return base
			}
			if cell := rows[row][col]; cell == "100.0" || cell == "100" {
				return base.Inherit(full)
			}
			return base.Inherit(short)
		})
}
