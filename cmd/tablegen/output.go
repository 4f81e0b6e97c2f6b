package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/samber/lo"

	"github.com/syssam/tablegen/compiler/gen"
)

type graphSummary struct {
	Context string        `json:"context"`
	Types   []typeSummary `json:"types"`
	Vetoed  []string      `json:"vetoed,omitempty"`
}

type typeSummary struct {
	Name     string         `json:"name"`
	Table    string         `json:"table"`
	Features []string       `json:"features"`
	Fields   []fieldSummary `json:"fields"`
}

type fieldSummary struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Type       string `json:"type"`
	Column     string `json:"column,omitempty"`
	PrimaryKey bool   `json:"primary_key,omitempty"`
	Nullable   bool   `json:"nullable,omitempty"`
	Relation   string `json:"relation,omitempty"`
	Target     string `json:"target,omitempty"`
}

func summarize(g *gen.Graph) graphSummary {
	s := graphSummary{Context: g.ID, Vetoed: g.Vetoed}
	for _, t := range g.Nodes {
		pks := t.PrimaryKeys()
		ts := typeSummary{Name: t.Name, Table: t.Table.Name, Features: t.Features()}
		for _, f := range t.Fields {
			fs := fieldSummary{
				Name:       f.Name,
				Kind:       f.Kind.String(),
				Type:       f.Type.String(),
				Column:     f.ColumnName(),
				PrimaryKey: lo.Contains(pks, f),
				Nullable:   f.IsPhysical() && f.Nullable(),
			}
			if rel := t.RelationByField(f.Name); rel != nil {
				fs.Relation = string(rel.JoinType)
				fs.Target = rel.TargetTable + "." + rel.TargetColumn
			}
			ts.Fields = append(ts.Fields, fs)
		}
		s.Types = append(s.Types, ts)
	}
	return s
}

func printJSON(w io.Writer, graphs []*gen.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(lo.Map(graphs, func(g *gen.Graph, _ int) graphSummary {
		return summarize(g)
	}))
}

func printText(w io.Writer, graphs []*gen.Graph) {
	var (
		header  = color.New(color.Bold)
		typ     = color.New(color.FgCyan, color.Bold)
		derived = color.New(color.FgMagenta)
		faint   = color.New(color.Faint)
	)
	for _, g := range graphs {
		s := summarize(g)
		header.Fprintf(w, "context %s: %d types\n", s.Context, len(s.Types))
		for _, t := range s.Types {
			fmt.Fprintf(w, "  %s %s\n", typ.Sprint(t.Name), faint.Sprintf("(%s)", t.Table))
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			for _, f := range t.Fields {
				if f.Kind == gen.Derived.String() {
					fmt.Fprintf(tw, "    %s\t%s\t%s -> %s\n", derived.Sprint(f.Name), f.Type, strings.ToUpper(f.Relation), f.Target)
					continue
				}
				var flags []string
				if f.PrimaryKey {
					flags = append(flags, "pk")
				}
				if f.Nullable {
					flags = append(flags, "null")
				}
				fmt.Fprintf(tw, "    %s\t%s\t%s\t%s\n", f.Name, f.Type, f.Column, strings.Join(flags, ","))
			}
			tw.Flush()
		}
		if len(s.Vetoed) > 0 {
			fmt.Fprintf(w, "  %s %s\n", color.YellowString("skipped:"), strings.Join(s.Vetoed, ", "))
		}
	}
}
