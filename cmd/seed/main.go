package main

import (
    "context"
    "fmt"
    "math/rand"
    "os"
    "strconv"

    "github.com/google/uuid"
    "golang.org/x/crypto/bcrypt"

    "github.com/shanikumar001/project-gallery-backend/config"
    "github.com/shanikumar001/project-gallery-backend/internal/model"
    "github.com/shanikumar001/project-gallery-backend/internal/repository"
    "github.com/shanikumar001/project-gallery-backend/pkg/database"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

// 生成本地演示数据：N 个用户、随机关注边、私信和作品
func main() {
    cfg := must(config.Load())
    db := must(database.InitDB(cfg))
    if err := database.Migrate(db); err != nil {
        panic(err)
    }

    followRepo := repository.NewFollowRepository(db)
    connRepo := repository.NewConnectionRepository(db)
    ctx := context.Background()

    N := 100
    if s := os.Getenv("N"); s != "" {
        if n, err := strconv.Atoi(s); err == nil && n > 0 { N = n }
    }

    hash := must(bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost))

    users := make([]model.User, N)
    batch := 500
    for i := 0; i < N; i++ {
        id := uuid.New().String()
        users[i] = model.User{
            ID:       id,
            Username: "demo_" + id[:8],
            Email:    id[:8] + "@example.com",
            Password: string(hash),
            Name:     fmt.Sprintf("Demo User %d", i),
            Verified: true,
        }
        if (i+1)%batch == 0 {
            sub := users[i+1-batch : i+1]
            must(0, db.Create(&sub).Error)
        }
    }
    if N%batch != 0 {
        sub := users[N-N%batch:]
        must(0, db.Create(&sub).Error)
    }

    // 每个用户随机关注若干人
    edges := 0
    for i := range users {
        k := rand.Intn(5) + 1
        for j := 0; j < k; j++ {
            to := users[rand.Intn(N)].ID
            if to == users[i].ID { continue }
            if err := followRepo.Create(ctx, users[i].ID, to); err == nil {
                edges++
            }
        }
    }

    // 相邻用户互为 connection，并互发一条私信
    msgs := 0
    for i := 0; i+1 < N; i += 2 {
        a, b := users[i], users[i+1]
        _ = connRepo.Create(ctx, a.ID, b.ID)
        pair := []model.Message{
            {ID: uuid.New().String(), SenderID: a.ID, ReceiverID: b.ID, Text: "hey, saw your latest project"},
            {ID: uuid.New().String(), SenderID: b.ID, ReceiverID: a.ID, Text: "thanks! still polishing it"},
        }
        must(0, db.Create(&pair).Error)
        msgs += 2
    }

    // 每三个用户发布一个作品，带一个点赞和一条评论
    projects := 0
    for i := 0; i < N; i += 3 {
        owner := users[i]
        p := model.Project{
            ID:        uuid.New().String(),
            OwnerID:   owner.ID,
            Title:     fmt.Sprintf("Project %d", i),
            Description: "seeded demo project",
            MediaType: "image",
            Tags:      "demo,seed",
        }
        must(0, db.Create(&p).Error)
        fan := users[(i+1)%N]
        must(0, db.Create(&model.ProjectLike{ID: uuid.New().String(), ProjectID: p.ID, UserID: fan.ID}).Error)
        must(0, db.Create(&model.ProjectComment{ID: uuid.New().String(), ProjectID: p.ID, UserID: fan.ID, Text: "nice work"}).Error)
        projects++
    }

    fmt.Printf("seeded: users=%d follows=%d messages=%d projects=%d\n", N, edges, msgs, projects)
}
