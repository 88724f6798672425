package service

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/shanikumar001/project-gallery-backend/internal/model"
    "github.com/shanikumar001/project-gallery-backend/internal/repository"
)

func TestProjectLifecycle(t *testing.T) {
    db := setupDB(t)
    svc := NewProjectService(repository.NewProjectRepository(db))
    ctx := context.Background()
    seedUser(t, db, "a", "alice")

    p, err := svc.Create(ctx, "a", ProjectInput{Title: "  My Robot  ", Description: "arduino build", Tags: []string{"diy", "robotics"}})
    require.NoError(t, err)
    assert.Equal(t, "My Robot", p.Title)
    assert.Equal(t, "diy,robotics", p.Tags)

    got, err := svc.Get(ctx, p.ID)
    require.NoError(t, err)
    assert.Equal(t, p.ID, got.ID)

    updated, err := svc.Update(ctx, p.ID, "a", ProjectInput{Title: "My Robot v2", Description: "now with lasers"})
    require.NoError(t, err)
    assert.Equal(t, "My Robot v2", updated.Title)

    require.NoError(t, svc.Delete(ctx, p.ID, "a"))
    _, err = svc.Get(ctx, p.ID)
    assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectOwnerOnly(t *testing.T) {
    db := setupDB(t)
    svc := NewProjectService(repository.NewProjectRepository(db))
    ctx := context.Background()
    seedUser(t, db, "a", "alice")
    seedUser(t, db, "b", "bob")

    p, err := svc.Create(ctx, "a", ProjectInput{Title: "Mine"})
    require.NoError(t, err)

    _, err = svc.Update(ctx, p.ID, "b", ProjectInput{Title: "Stolen"})
    assert.ErrorIs(t, err, ErrNotOwner)
    err = svc.Delete(ctx, p.ID, "b")
    assert.ErrorIs(t, err, ErrNotOwner)
}

func TestProjectCreateEmptyTitle(t *testing.T) {
    db := setupDB(t)
    svc := NewProjectService(repository.NewProjectRepository(db))
    seedUser(t, db, "a", "alice")

    _, err := svc.Create(context.Background(), "a", ProjectInput{Title: "   "})
    assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestLikeAndSaveIdempotent(t *testing.T) {
    db := setupDB(t)
    repo := repository.NewProjectRepository(db)
    svc := NewProjectService(repo)
    ctx := context.Background()
    seedUser(t, db, "a", "alice")
    seedUser(t, db, "b", "bob")

    p, err := svc.Create(ctx, "a", ProjectInput{Title: "Likeable"})
    require.NoError(t, err)

    for i := 0; i < 3; i++ {
        require.NoError(t, svc.Like(ctx, p.ID, "b"))
        require.NoError(t, svc.Save(ctx, p.ID, "b"))
    }
    likes, err := repo.CountLikes(ctx, p.ID)
    require.NoError(t, err)
    assert.EqualValues(t, 1, likes)

    saved, err := svc.ListSaved(ctx, "b", 1, 10)
    require.NoError(t, err)
    require.Len(t, saved, 1)
    assert.Equal(t, p.ID, saved[0].ID)

    require.NoError(t, svc.Unlike(ctx, p.ID, "b"))
    require.NoError(t, svc.Unlike(ctx, p.ID, "b"))
    likes, err = repo.CountLikes(ctx, p.ID)
    require.NoError(t, err)
    assert.EqualValues(t, 0, likes)
}

func TestCommentPermissions(t *testing.T) {
    db := setupDB(t)
    svc := NewProjectService(repository.NewProjectRepository(db))
    ctx := context.Background()
    seedUser(t, db, "a", "alice")
    seedUser(t, db, "b", "bob")
    seedUser(t, db, "c", "carol")

    p, err := svc.Create(ctx, "a", ProjectInput{Title: "Discussed"})
    require.NoError(t, err)

    cm, err := svc.Comment(ctx, p.ID, "b", "nice work")
    require.NoError(t, err)

    // 路人不能删
    err = svc.DeleteComment(ctx, p.ID, cm.ID, "c")
    assert.ErrorIs(t, err, ErrNotOwner)

    // 作品所有者可删他人评论
    require.NoError(t, svc.DeleteComment(ctx, p.ID, cm.ID, "a"))

    cm2, err := svc.Comment(ctx, p.ID, "b", "still nice")
    require.NoError(t, err)
    // 评论作者可删自己的
    require.NoError(t, svc.DeleteComment(ctx, p.ID, cm2.ID, "b"))

    list, err := svc.ListComments(ctx, p.ID)
    require.NoError(t, err)
    assert.Empty(t, list)
}

func TestDeleteProjectCleansEdges(t *testing.T) {
    db := setupDB(t)
    repo := repository.NewProjectRepository(db)
    svc := NewProjectService(repo)
    ctx := context.Background()
    seedUser(t, db, "a", "alice")
    seedUser(t, db, "b", "bob")

    p, err := svc.Create(ctx, "a", ProjectInput{Title: "Ephemeral"})
    require.NoError(t, err)
    require.NoError(t, svc.Like(ctx, p.ID, "b"))
    require.NoError(t, svc.Save(ctx, p.ID, "b"))
    _, err = svc.Comment(ctx, p.ID, "b", "bye")
    require.NoError(t, err)

    require.NoError(t, svc.Delete(ctx, p.ID, "a"))

    for _, m := range []any{&model.ProjectLike{}, &model.ProjectSave{}, &model.ProjectComment{}} {
        var cnt int64
        require.NoError(t, db.Model(m).Count(&cnt).Error)
        assert.EqualValues(t, 0, cnt)
    }
}
