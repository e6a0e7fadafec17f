package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/pflag"

	"github.com/JaimeStill/agent-meet/internal/agents"
	"github.com/JaimeStill/agent-meet/pkg/avatar"
	"github.com/JaimeStill/agent-meet/pkg/pagination"
	"github.com/JaimeStill/agent-meet/pkg/query"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5C6370"))
)

func runList(a *app, args []string) error {
	var (
		in     agents.ListInput
		search string
		name   string
		sort   string
	)

	flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
	flagSet.IntVar(&in.Page, "page", 1, "page number")
	flagSet.IntVar(&in.PageSize, "page-size", 0, "page size (default: server default)")
	flagSet.StringVar(&search, "search", "", "search name and instructions")
	flagSet.StringVar(&name, "name", "", "filter by name")
	flagSet.StringVar(&sort, "sort", "", "sort fields, e.g. -UpdatedAt,Name")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if search != "" {
		in.Search = &search
	}
	if name != "" {
		in.Name = &name
	}
	in.Sort = query.ParseSortFields(sort)

	page, err := a.agents.GetMany(context.Background(), in)
	if err != nil {
		return err
	}

	fmt.Println(renderAgents(page))
	if next, ok := page.Next(in.PageRequest); ok {
		fmt.Println(footerStyle.Render(fmt.Sprintf("more: agentctl list --page %d", next.Page)))
	}
	return nil
}

func renderAgents(page *pagination.PageResult[agents.Agent]) string {
	rows := make([][]string, 0, len(page.Data))
	for _, ag := range page.Data {
		rows = append(rows, []string{
			avatar.New(ag.Name).Badge(),
			ag.Name,
			summarize(ag.Instructions, 48),
			ag.ID.String(),
			ag.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	t := lgtable.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "NAME", "INSTRUCTIONS", "ID", "UPDATED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	footer := footerStyle.Render(fmt.Sprintf(
		"page %d of %d, %d agents", page.Page, page.TotalPages, page.Total,
	))
	return lipgloss.JoinVertical(lipgloss.Left, t.String(), footer)
}

func summarize(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len([]rune(s)) <= width {
		return s
	}
	return string([]rune(s)[:width-1]) + "…"
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
