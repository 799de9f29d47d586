package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KuangshiAi/keo/annotation"
)

func TestCreateGetDelete(t *testing.T) {
	ctx := context.Background()
	m := New()
	defer m.Close()

	created, err := m.Create(ctx, "gmaa", "release-1")
	require.NoError(t, err)
	require.Equal(t, "release-1", created.GoldSetID)

	_, err = m.Create(ctx, "gmaa", "release-1")
	require.Error(t, err)

	got, err := m.Get(ctx, "gmaa", "release-1")
	require.NoError(t, err)
	assert.Empty(t, got.Annotations)

	ids, err := m.List(ctx, "gmaa")
	require.NoError(t, err)
	assert.Equal(t, []string{"release-1"}, ids)

	require.NoError(t, m.Delete(ctx, "gmaa", "release-1"))
	_, err = m.Get(ctx, "gmaa", "release-1")
	require.Error(t, err)
}

func TestAddAnnotation(t *testing.T) {
	ctx := context.Background()
	m := New()
	defer m.Close()

	_, err := m.Create(ctx, "gmaa", "release-1")
	require.NoError(t, err)

	a := &annotation.Annotation{DocID: "doc-1", Mention: "fuel pump", QID: "Q1"}
	require.NoError(t, m.AddAnnotation(ctx, "gmaa", "release-1", a))
	require.Error(t, m.AddAnnotation(ctx, "gmaa", "release-1", a), "duplicate add must fail")

	got, err := m.Get(ctx, "gmaa", "release-1")
	require.NoError(t, err)
	require.Len(t, got.Annotations, 1)
	assert.NotNil(t, got.Annotations[0].CreationTimestamp)

	// Mutating the returned copy must not affect stored state.
	got.Annotations[0].Mention = "changed"
	again, err := m.Get(ctx, "gmaa", "release-1")
	require.NoError(t, err)
	assert.Equal(t, "fuel pump", again.Annotations[0].Mention)
}

func TestDeleteAnnotation(t *testing.T) {
	ctx := context.Background()
	m := New()
	defer m.Close()

	_, err := m.Create(ctx, "gmaa", "release-1")
	require.NoError(t, err)
	a := &annotation.Annotation{DocID: "doc-1", Mention: "fuel pump", QID: "Q1"}
	require.NoError(t, m.AddAnnotation(ctx, "gmaa", "release-1", a))

	require.NoError(t, m.DeleteAnnotation(ctx, "gmaa", "release-1", a.Key()))
	require.Error(t, m.DeleteAnnotation(ctx, "gmaa", "release-1", a.Key()))
}

func TestGetAnnotation(t *testing.T) {
	ctx := context.Background()
	m := New()
	defer m.Close()

	_, err := m.Create(ctx, "gmaa", "release-1")
	require.NoError(t, err)
	a := &annotation.Annotation{DocID: "doc-1", Mention: "fuel pump", QID: "Q1"}
	require.NoError(t, m.AddAnnotation(ctx, "gmaa", "release-1", a))

	got, err := m.GetAnnotation(ctx, "gmaa", "release-1", a.Key())
	require.NoError(t, err)
	assert.Equal(t, "fuel pump", got.Mention)

	_, err = m.GetAnnotation(ctx, "gmaa", "release-1", "missing")
	require.Error(t, err)
}

func TestUpdateAnnotation(t *testing.T) {
	ctx := context.Background()
	m := New()
	defer m.Close()

	_, err := m.Create(ctx, "gmaa", "release-1")
	require.NoError(t, err)
	a := &annotation.Annotation{DocID: "doc-1", Mention: "fuel pump", QID: "Q1"}
	require.NoError(t, m.AddAnnotation(ctx, "gmaa", "release-1", a))

	updated := &annotation.Annotation{DocID: "doc-1", Mention: "fuel pump", QID: "Q2", AltQIDs: []string{"Q3"}}
	require.NoError(t, m.UpdateAnnotation(ctx, "gmaa", "release-1", a.Key(), updated))

	got, err := m.Get(ctx, "gmaa", "release-1")
	require.NoError(t, err)
	require.Len(t, got.Annotations, 1)
	assert.Equal(t, "Q2", got.Annotations[0].QID)
	assert.Equal(t, []string{"Q3"}, got.Annotations[0].AltQIDs)

	require.Error(t, m.UpdateAnnotation(ctx, "gmaa", "release-1", a.Key(), updated),
		"the old key no longer exists after the update")
}
