package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// New dials the broker and proves it is usable by opening and closing a
// channel before handing the connection back.
func New(ctx context.Context, url string) (*amqp.Connection, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	type dialResult struct {
		conn *amqp.Connection
		err  error
	}
	done := make(chan dialResult, 1)
	go func() {
		conn, err := amqp.Dial(url)
		done <- dialResult{conn: conn, err: err}
	}()

	select {
	case <-dialCtx.Done():
		return nil, fmt.Errorf("dial rabbitmq timeout: %w", dialCtx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("dial rabbitmq failed: %w", res.err)
		}
		ch, err := res.conn.Channel()
		if err != nil {
			_ = res.conn.Close()
			return nil, fmt.Errorf("open rabbitmq channel failed: %w", err)
		}
		_ = ch.Close()
		return res.conn, nil
	}
}
