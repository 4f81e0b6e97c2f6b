package gen

import (
	"strings"

	"github.com/huandu/go-clone"
	"github.com/samber/lo"

	"github.com/syssam/tablegen/schema"
)

// MergeTablePatterns returns the effective table entries: wildcard entries
// first, then exact entries, each group in declaration order. Every exact
// entry is filled from the first wildcard entry matching its name. The
// input entries are not modified.
func MergeTablePatterns(patterns []*schema.TablePattern) []*schema.TablePattern {
	copied := make([]*schema.TablePattern, 0, len(patterns))
	for _, p := range patterns {
		if p != nil {
			copied = append(copied, clonePattern(p))
		}
	}
	wildcards, exact := lo.FilterReject(copied, func(p *schema.TablePattern, _ int) bool {
		return p.IsWildcard()
	})
	if len(wildcards) > 0 {
		for _, e := range exact {
			if w := firstMatch(wildcards, e.Name); w != nil {
				fillPattern(e, w)
			}
		}
	}
	return append(wildcards, exact...)
}

// PatternFor returns the effective entry of a physical table from merged
// entries: the exact entry with the table name, otherwise a copy of the
// first matching wildcard entry named after the table. It returns nil for
// tables that are not configured.
func PatternFor(merged []*schema.TablePattern, table string) *schema.TablePattern {
	for _, p := range merged {
		if !p.IsWildcard() && strings.EqualFold(p.Name, table) {
			return p
		}
	}
	if w := firstMatch(merged, table); w != nil {
		p := clonePattern(w)
		p.Name = table
		return p
	}
	return nil
}

// firstMatch returns the first wildcard entry matching table.
func firstMatch(patterns []*schema.TablePattern, table string) *schema.TablePattern {
	for _, p := range patterns {
		if p.IsWildcard() && p.Matches(table) {
			return p
		}
	}
	return nil
}

// fillPattern copies the values of src into the unset values of dst. The
// renaming rule of src, when defined, always replaces the one of dst.
func fillPattern(dst, src *schema.TablePattern) {
	fill(&dst.ParentTable, src.ParentTable)
	fill(&dst.LogicDeleteColumn, src.LogicDeleteColumn)
	fill(&dst.VersionColumn, src.VersionColumn)
	fill(&dst.TenantColumn, src.TenantColumn)
	fill(&dst.DisplayColumn, src.DisplayColumn)
	if src.DomainObjectRenamingRule != nil {
		r := *src.DomainObjectRenamingRule
		dst.DomainObjectRenamingRule = &r
	}
}

func fill(dst *string, src string) {
	if *dst == "" && src != "" {
		*dst = src
	}
}

func clonePattern(p *schema.TablePattern) *schema.TablePattern {
	return clone.Clone(p).(*schema.TablePattern)
}
