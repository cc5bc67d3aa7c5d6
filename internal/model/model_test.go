package model

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/notarium/internal/config"
	"github.com/vk/notarium/internal/ctxlog"
	"github.com/vk/notarium/internal/diag"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoad(t *testing.T) {
	// --- Arrange ---
	defs := []config.TypeDefinition{
		{
			Key:    "Definition",
			Name:   "Definition",
			Colour: "#123456",
			Links: []config.LinkDefinition{
				{Key: "uses", OriginName: "Uses", TargetName: "Used by", TargetShow: true},
				{Key: "generalizes", OriginName: "Generalizes", TargetName: "Generalized by"},
			},
		},
		{Key: "Theorem", Name: "Theorem", Description: "A proven statement", Abbreviation: "Thm", Colour: "#abcdef"},
	}

	// --- Act ---
	m, err := Load(testContext(), defs)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())

	def, ok := m.GetType("Definition")
	require.True(t, ok)
	assert.Equal(t, "Definition", m.Type(def).Description, "description defaults to the name")
	require.Len(t, m.Type(def).Links, 2)

	uses, ok := m.GetLink(def, "uses")
	require.True(t, ok)
	assert.Equal(t, def, m.Link(uses).Type)
	assert.True(t, m.Link(uses).TargetShow)

	thm, ok := m.GetType("Theorem")
	require.True(t, ok)
	assert.Equal(t, "A proven statement", m.Type(thm).Description)
	_, ok = m.GetLink(thm, "uses")
	assert.False(t, ok, "link keys are scoped to their type")

	_, ok = m.GetType("Lemma")
	assert.False(t, ok)

	assert.Equal(t, []TypeID{def, thm}, m.Types())
}

func TestLoad_Duplicates(t *testing.T) {
	testCases := []struct {
		name     string
		defs     []config.TypeDefinition
		wantCode string
	}{
		{
			name: "duplicate type",
			defs: []config.TypeDefinition{
				{Key: "A", Name: "A"},
				{Key: "A", Name: "Again"},
			},
			wantCode: diag.CodeDuplicateType,
		},
		{
			name: "duplicate link within type",
			defs: []config.TypeDefinition{
				{Key: "A", Name: "A", Links: []config.LinkDefinition{{Key: "x"}, {Key: "x"}}},
			},
			wantCode: diag.CodeDuplicateLink,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(testContext(), tc.defs)

			require.Error(t, err)
			assert.True(t, diag.Is(err, diag.CategorySchema))
			assert.Equal(t, tc.wantCode, diag.Code(err))
		})
	}
}

func TestLoad_SameLinkKeyOnDifferentTypes(t *testing.T) {
	defs := []config.TypeDefinition{
		{Key: "A", Name: "A", Links: []config.LinkDefinition{{Key: "x"}}},
		{Key: "B", Name: "B", Links: []config.LinkDefinition{{Key: "x"}}},
	}

	m, err := Load(testContext(), defs)
	require.NoError(t, err)

	a, _ := m.GetType("A")
	b, _ := m.GetType("B")
	la, ok := m.GetLink(a, "x")
	require.True(t, ok)
	lb, ok := m.GetLink(b, "x")
	require.True(t, ok)
	assert.NotEqual(t, la, lb)
}
