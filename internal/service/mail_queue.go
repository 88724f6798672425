package service

import (
    "context"
    "time"

    "go.uber.org/zap"

    "github.com/shanikumar001/project-gallery-backend/pkg/logger"
)

type mailJob struct {
    to      string
    subject string
    body    string
    enqAt   time.Time
}

// MailQueue 简单的本地异步投递队列（注册验证码等即时邮件走这里，
// 不经外发盒；投递失败只记日志，不影响触发方）
type MailQueue struct {
    sender Sender
    ch     chan mailJob
}

func NewMailQueue(sender Sender, queueSize int) *MailQueue {
    if queueSize <= 0 {
        queueSize = 1024
    }
    return &MailQueue{sender: sender, ch: make(chan mailJob, queueSize)}
}

func (q *MailQueue) Start(workers int) func(context.Context) error {
    if workers <= 0 {
        workers = 2
    }
    stopCh := make(chan struct{})
    for i := 0; i < workers; i++ {
        go func() {
            for {
                select {
                case job := <-q.ch:
                    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
                    if err := q.sender.Send(ctx, job.to, job.subject, job.body); err != nil {
                        logger.Warn("mail send failed", zap.String("to", job.to), zap.Error(err))
                    }
                    cancel()
                case <-stopCh:
                    return
                }
            }
        }()
    }
    return func(ctx context.Context) error {
        close(stopCh)
        // 等待队列自然排空一小段时间
        timeout := time.After(2 * time.Second)
        for {
            select {
            case <-timeout:
                return nil
            default:
                if len(q.ch) == 0 {
                    return nil
                }
                time.Sleep(50 * time.Millisecond)
            }
        }
    }
}

func (q *MailQueue) Enqueue(to, subject, body string) {
    select {
    case q.ch <- mailJob{to: to, subject: subject, body: body, enqAt: time.Now()}:
    default:
        logger.Warn("mail queue full, drop message", zap.String("to", to))
    }
}

// QueueLen 返回当前队列长度（采样值）。
func (q *MailQueue) QueueLen() int { return len(q.ch) }
