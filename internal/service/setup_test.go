package service

import (
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/require"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"
    gormlogger "gorm.io/gorm/logger"

    "github.com/shanikumar001/project-gallery-backend/internal/model"
    "github.com/shanikumar001/project-gallery-backend/internal/repository"
    "github.com/shanikumar001/project-gallery-backend/pkg/database"
)

func setupDB(t *testing.T) *gorm.DB {
    t.Helper()
    db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
        Logger: gormlogger.Default.LogMode(gormlogger.Silent),
    })
    require.NoError(t, err)
    require.NoError(t, database.Migrate(db))
    return db
}

func setupRedis(t *testing.T) *redis.Client {
    t.Helper()
    mr := miniredis.RunT(t)
    return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func seedUser(t *testing.T, db *gorm.DB, id, username string) *model.User {
    t.Helper()
    u := &model.User{
        ID:       id,
        Username: username,
        Email:    username + "@example.com",
        Name:     username,
        Password: "x",
    }
    require.NoError(t, db.Create(u).Error)
    return u
}

func newRelService(t *testing.T, db *gorm.DB) RelationshipService {
    t.Helper()
    return NewRelationshipService(
        db,
        repository.NewUserRepository(db),
        repository.NewFollowRepository(db),
        repository.NewFollowRequestRepository(db),
        repository.NewConnectionRepository(db),
    )
}

func seedMessage(t *testing.T, db *gorm.DB, id, from, to, text string, read bool, at time.Time) {
    t.Helper()
    m := &model.Message{ID: id, SenderID: from, ReceiverID: to, Text: text, Read: read, CreatedAt: at}
    require.NoError(t, db.Create(m).Error)
}
