package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/JaimeStill/agent-meet/internal/meetings"
	"github.com/JaimeStill/agent-meet/pkg/avatar"
	"github.com/JaimeStill/agent-meet/pkg/pagination"
	"github.com/JaimeStill/agent-meet/pkg/query"
)

func runMeetings(a *app, args []string) error {
	var (
		in     meetings.ListInput
		agent  string
		status string
		search string
		sort   string
	)

	flagSet := pflag.NewFlagSet("meetings", pflag.ContinueOnError)
	flagSet.IntVar(&in.Page, "page", 1, "page number")
	flagSet.IntVar(&in.PageSize, "page-size", 0, "page size (default: server default)")
	flagSet.StringVar(&agent, "agent", "", "only meetings run by this agent id")
	flagSet.StringVar(&status, "status", "", "only meetings in this status")
	flagSet.StringVar(&search, "search", "", "search meeting names")
	flagSet.StringVar(&sort, "sort", "", "sort fields, e.g. -CreatedAt")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if agent != "" {
		id, err := uuid.Parse(agent)
		if err != nil {
			return fmt.Errorf("invalid agent id %q: %w", agent, err)
		}
		in.AgentID = &id
	}
	if status != "" {
		s := meetings.Status(status)
		if err := s.Validate(); err != nil {
			return err
		}
		in.Status = &s
	}
	if search != "" {
		in.Search = &search
	}
	in.Sort = query.ParseSortFields(sort)

	ctx := context.Background()
	page, err := a.meetings.GetMany(ctx, in)
	if err != nil {
		return err
	}

	fmt.Println(renderMeetings(page, a.agentNames(ctx, page.Data)))
	if next, ok := page.Next(in.PageRequest); ok {
		fmt.Println(footerStyle.Render(fmt.Sprintf("more: agentctl meetings --page %d", next.Page)))
	}
	return nil
}

// agentNames resolves the agent of each meeting through the cached
// agents.getOne query. Agents that cannot be loaded are left out.
func (a *app) agentNames(ctx context.Context, ms []meetings.Meeting) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string)
	for _, m := range ms {
		if _, ok := names[m.AgentID]; ok {
			continue
		}
		ag, err := a.agents.GetOne(ctx, m.AgentID)
		if err != nil {
			a.logger.Warn("resolve meeting agent", "agent_id", m.AgentID, "error", err)
			continue
		}
		names[m.AgentID] = ag.Name
	}
	return names
}

func renderMeetings(page *pagination.PageResult[meetings.Meeting], names map[uuid.UUID]string) string {
	rows := make([][]string, 0, len(page.Data))
	for _, m := range page.Data {
		agent, ok := names[m.AgentID]
		if !ok {
			agent = m.AgentID.String()[:8]
		}
		rows = append(rows, []string{
			avatar.New(agent).Badge(),
			m.Name,
			agent,
			string(m.Status),
			formatTime(m.StartedAt),
			m.ID.String(),
		})
	}

	t := lgtable.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "NAME", "AGENT", "STATUS", "STARTED", "ID").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	footer := footerStyle.Render(fmt.Sprintf(
		"page %d of %d, %d meetings", page.Page, page.TotalPages, page.Total,
	))
	return lipgloss.JoinVertical(lipgloss.Left, t.String(), footer)
}
