package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyscope/studyscope/internal/apperr"
)

func TestTagService_AddAndList(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	svc := &TagService{Repo: r}
	ctx := context.Background()

	tag, err := svc.AddTag(ctx, "fiction")
	require.NoError(t, err)
	assert.Equal(t, "fiction", tag.Name)
	assert.NotEmpty(t, tag.UID)

	dup, err := svc.AddTag(ctx, "fiction")
	assert.Nil(t, dup)
	assert.ErrorIs(t, err, apperr.ErrTagExists)

	tags, err := svc.GetTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestTagService_UpdateDelete(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	svc := &TagService{Repo: r}
	ctx := context.Background()

	tag, err := svc.AddTag(ctx, "sci-fi")
	require.NoError(t, err)

	renamed, err := svc.UpdateTag(ctx, tag.UID, "science-fiction")
	require.NoError(t, err)
	assert.Equal(t, "science-fiction", renamed.Name)

	_, err = svc.UpdateTag(ctx, uuid.New(), "nope")
	assert.ErrorIs(t, err, apperr.ErrTagNotFound)

	require.NoError(t, svc.DeleteTag(ctx, tag.UID))
	assert.ErrorIs(t, svc.DeleteTag(ctx, tag.UID), apperr.ErrTagNotFound)
}

func TestTagService_AddTagsToBook(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	tagSvc := &TagService{Repo: r}
	bookSvc := &BookService{Repo: r}
	ctx := context.Background()

	book, err := bookSvc.CreateBook(ctx, bookInput(), uuid.New())
	require.NoError(t, err)

	_, err = tagSvc.AddTag(ctx, "programming")
	require.NoError(t, err)

	// One existing tag, one created on the fly.
	tagged, err := tagSvc.AddTagsToBook(ctx, book.UID, []string{"programming", "go"})
	require.NoError(t, err)
	require.Len(t, tagged.Tags, 2)

	names := []string{tagged.Tags[0].Name, tagged.Tags[1].Name}
	assert.ElementsMatch(t, []string{"programming", "go"}, names)

	_, err = tagSvc.AddTagsToBook(ctx, uuid.New(), []string{"x"})
	assert.ErrorIs(t, err, apperr.ErrBookNotFound)
}
