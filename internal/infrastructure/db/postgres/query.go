package postgres

import (
	"fmt"
	"strings"

	"github.com/dashkit/admin-api/internal/core/domain"
)

// args accumulates positional parameters and hands out their placeholders.
type args struct {
	values []any
}

func (a *args) add(v any) string {
	a.values = append(a.values, v)
	return fmt.Sprintf("$%d", len(a.values))
}

// where joins clauses with AND; it returns "" when there are none.
func where(clauses []string) string {
	if len(clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(clauses, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into an ILIKE pattern matching it as a literal substring.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// pageClause renders newest-first ordering plus LIMIT/OFFSET. A non-positive
// limit returns every row.
func pageClause(a *args, pageNum, limit int) string {
	clause := " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		clause += " LIMIT " + a.add(limit) + " OFFSET " + a.add(domain.Skip(pageNum, limit))
	}
	return clause
}

// setList renders "col = $n" pairs in the order given.
func setList(a *args, cols []string, vals []any) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = col + " = " + a.add(vals[i])
	}
	return strings.Join(parts, ", ")
}
