// Package report summarizes a call graph: size, reuse hotspots and role complexity.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/viant/playgraph/graph"
)

// DefaultTop limits the hotspot list
const DefaultTop = 10

// Summary holds global graph statistics
type Summary struct {
	Playbooks      int
	TaskFiles      int
	Roles          int
	Edges          int
	Hotspots       []*Hotspot
	RoleComplexity []*RoleStat
}

// Hotspot is a task file with its number of call sites and distinct callees
type Hotspot struct {
	ID      string
	Role    string
	Callers int
	Callees int
}

// RoleStat counts task files reached within a role
type RoleStat struct {
	Role      string
	TaskFiles int
}

// Build computes a summary; top limits hotspots, values below 1 keep all of them.
func Build(g *graph.Graph, top int) *Summary {
	ret := &Summary{Edges: len(g.Edges())}
	perRole := map[string]int{}
	for _, node := range g.Nodes() {
		switch node.Kind {
		case graph.KindPlaybook:
			ret.Playbooks++
		case graph.KindTask:
			ret.TaskFiles++
			perRole[node.Role]++
			if callers := g.InDegree(node.ID); callers > 0 {
				ret.Hotspots = append(ret.Hotspots, &Hotspot{ID: node.ID, Role: node.Role, Callers: callers, Callees: distinct(g.Successors(node.ID))})
			}
		}
	}
	sort.Slice(ret.Hotspots, func(i, j int) bool {
		if ret.Hotspots[i].Callers != ret.Hotspots[j].Callers {
			return ret.Hotspots[i].Callers > ret.Hotspots[j].Callers
		}
		return ret.Hotspots[i].ID < ret.Hotspots[j].ID
	})
	if top > 0 && len(ret.Hotspots) > top {
		ret.Hotspots = ret.Hotspots[:top]
	}

	ret.Roles = len(perRole)
	for role, count := range perRole {
		ret.RoleComplexity = append(ret.RoleComplexity, &RoleStat{Role: role, TaskFiles: count})
	}
	sort.Slice(ret.RoleComplexity, func(i, j int) bool {
		if ret.RoleComplexity[i].TaskFiles != ret.RoleComplexity[j].TaskFiles {
			return ret.RoleComplexity[i].TaskFiles > ret.RoleComplexity[j].TaskFiles
		}
		return ret.RoleComplexity[i].Role < ret.RoleComplexity[j].Role
	})
	return ret
}

func distinct(ids []string) int {
	seen := map[string]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	return len(seen)
}

// Write prints the summary as terminal tables
func (s *Summary) Write(w io.Writer) error {
	renderer := lipgloss.NewRenderer(w)
	title := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	header := renderer.NewStyle().Bold(true).Padding(0, 1)
	cell := renderer.NewStyle().Padding(0, 1)
	styleFn := func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return header
		}
		return cell
	}
	newTable := func(headers ...string) *table.Table {
		return table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(renderer.NewStyle().Foreground(lipgloss.Color("#999999"))).
			StyleFunc(styleFn).
			Headers(headers...)
	}

	totals := newTable("playbooks", "task files", "roles", "edges").
		Row(strconv.Itoa(s.Playbooks), strconv.Itoa(s.TaskFiles), strconv.Itoa(s.Roles), strconv.Itoa(s.Edges))

	hotspots := newTable("task file", "role", "callers", "callees")
	for _, hotspot := range s.Hotspots {
		hotspots.Row(hotspot.ID, hotspot.Role, strconv.Itoa(hotspot.Callers), strconv.Itoa(hotspot.Callees))
	}

	roles := newTable("role", "task files")
	for _, stat := range s.RoleComplexity {
		roles.Row(stat.Role, strconv.Itoa(stat.TaskFiles))
	}

	sections := []struct {
		name  string
		table *table.Table
	}{
		{"Graph", totals},
		{"Reuse hotspots", hotspots},
		{"Role complexity", roles},
	}
	for _, section := range sections {
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", title.Render(section.name), section.table.String()); err != nil {
			return err
		}
	}
	return nil
}
