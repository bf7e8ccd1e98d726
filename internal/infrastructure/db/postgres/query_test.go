package postgres

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

func TestContainsPattern_EscapesWildcards(t *testing.T) {
	require.Equal(t, `%50\% off\_now%`, containsPattern("50% off_now"))
	require.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}

func TestWhere(t *testing.T) {
	require.Equal(t, "", where(nil))
	require.Equal(t, " WHERE a = $1 AND b = $2", where([]string{"a = $1", "b = $2"}))
}

func TestPageClause(t *testing.T) {
	var a args
	require.Equal(t, " ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2", pageClause(&a, 3, 10))
	require.Equal(t, []any{10, 20}, a.values)

	var far args
	pageClause(&far, 100000000000000000, 100)
	require.Equal(t, []any{100, math.MaxInt}, far.values)

	var all args
	require.Equal(t, " ORDER BY created_at DESC, id DESC", pageClause(&all, 1, 0))
	require.Empty(t, all.values)
}

func TestPostConditions_NumbersPlaceholdersInOrder(t *testing.T) {
	published := true
	var a args
	clauses := postConditions(&a, ports.PostFilter{Published: &published, AuthorID: "u1", Search: "go"})

	require.Equal(t, []string{
		"published = $1",
		"author_id = $2",
		`(title ILIKE $3 ESCAPE '\' OR content ILIKE $3 ESCAPE '\')`,
	}, clauses)
	require.Equal(t, []any{true, "u1", "%go%"}, a.values)
}

func TestUserSearch(t *testing.T) {
	var a args
	require.Nil(t, userSearch(&a, ""))

	clauses := userSearch(&a, "ann")
	require.Len(t, clauses, 1)
	require.Contains(t, clauses[0], "name ILIKE $1")
	require.Contains(t, clauses[0], "email ILIKE $1")
}

func TestUserChangesAndSetList(t *testing.T) {
	name := "Jane"
	role := domain.RoleManager
	cols, vals := userChanges(domain.UserPatch{Name: &name, Role: &role})
	require.Equal(t, []string{"name", "role"}, cols)
	require.Equal(t, []any{"Jane", "MANAGER"}, vals)

	var a args
	require.Equal(t, "name = $1, role = $2", setList(&a, cols, vals))
	require.Equal(t, "$3", a.add("id"))
}
