package service

import (
	"context"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubMaterializer_EnsureStubs(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		titles   []string
		created  []string
		total    int
	}{
		{name: "nothing referenced", titles: nil, created: []string{}, total: 0},
		{name: "new titles", titles: []string{"A", "B"}, created: []string{"A", "B"}, total: 2},
		{name: "existing title untouched", existing: []string{"A"}, titles: []string{"A", "B"}, created: []string{"B"}, total: 2},
		{name: "repeated in batch", titles: []string{"A", "A", " A "}, created: []string{"A"}, total: 1},
		{name: "blank titles skipped", titles: []string{"", "  ", "\t"}, created: []string{}, total: 0},
		{name: "case sensitive", existing: []string{"note"}, titles: []string{"Note"}, created: []string{"Note"}, total: 2},
		{name: "overlong title skipped", titles: []string{strings.Repeat("x", 513), "B", strings.Repeat("é", 512)}, created: []string{"B", strings.Repeat("é", 512)}, total: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := newMemNoteRepo()
			for _, title := range tt.existing {
				_, err := repo.Create(ctx, newNote(owner, title, "body"))
				require.NoError(t, err)
			}

			created, err := NewStubMaterializer(repo, nil).EnsureStubs(ctx, owner, tt.titles)
			require.NoError(t, err)

			got := make([]string, 0, len(created))
			for _, n := range created {
				got = append(got, n.Title)
				assert.Equal(t, "", n.Content)
				assert.Equal(t, owner, n.OwnerID)
			}
			assert.Equal(t, tt.created, got)
			assert.Equal(t, tt.total, repo.count(owner))
		})
	}
}

func TestStubMaterializer_OwnerScoped(t *testing.T) {
	ctx := context.Background()
	repo := newMemNoteRepo()
	_, err := repo.Create(ctx, newNote("other", "Shared", "theirs"))
	require.NoError(t, err)

	created, err := NewStubMaterializer(repo, nil).EnsureStubs(ctx, owner, []string{"Shared"})
	require.NoError(t, err)
	assert.Len(t, created, 1)
	assert.Equal(t, 1, repo.count("other"))
}

func TestStubMaterializer_StoreFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("lookup", func(t *testing.T) {
		repo := newMemNoteRepo()
		repo.failOn["title"] = true
		_, err := NewStubMaterializer(repo, nil).EnsureStubs(ctx, owner, []string{"A"})
		assert.ErrorIs(t, err, errStoreDown)
	})

	t.Run("create", func(t *testing.T) {
		repo := newMemNoteRepo()
		repo.failOn["create"] = true
		_, err := NewStubMaterializer(repo, nil).EnsureStubs(ctx, owner, []string{"A"})
		assert.ErrorIs(t, err, errStoreDown)
	})
}

func TestProperty_EnsureStubsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("second pass creates nothing and one note per distinct title", prop.ForAll(
		func(titles []string) bool {
			ctx := context.Background()
			repo := newMemNoteRepo()
			m := NewStubMaterializer(repo, nil)

			if _, err := m.EnsureStubs(ctx, owner, titles); err != nil {
				return false
			}
			again, err := m.EnsureStubs(ctx, owner, titles)
			if err != nil || len(again) != 0 {
				return false
			}

			distinct := map[string]struct{}{}
			for _, title := range titles {
				if trimmed := strings.TrimSpace(title); trimmed != "" {
					distinct[trimmed] = struct{}{}
				}
			}
			return repo.count(owner) == len(distinct)
		},
		gen.SliceOf(gen.OneConstOf("A", " A", "B", "c", "", "  ", "Long title")),
	))

	properties.TestingRun(t)
}
