package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"mailtriage/internal/model"
	"mailtriage/internal/stats"
)

// StatsWorker consumes triage events off the queue and folds them into the
// aggregate counters. Runs for the process lifetime; Close drains the
// consumer goroutine.
type StatsWorker struct {
	conn      *amqp.Connection
	recorder  stats.Recorder
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewStatsWorker(conn *amqp.Connection, recorder stats.Recorder, queueName string) *StatsWorker {
	return &StatsWorker{
		conn:      conn,
		recorder:  recorder,
		queueName: queueName,
	}
}

func (w *StatsWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var event model.TriageEvent
				if err := json.Unmarshal(d.Body, &event); err != nil {
					log.Printf("worker decode triage event failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}
				if !event.Category.Valid() {
					log.Printf("worker dropping event with unknown category %q", event.Category)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.recorder.Record(workerCtx, event.Category); err != nil {
					log.Printf("worker record stats failed: %v", err)
					_ = d.Nack(false, true)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *StatsWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
