package queue

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "sync"
    "time"

    "github.com/google/uuid"
    amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends BookingEvents to a durable RabbitMQ queue.  The connection
// is opened lazily and re-dialed after a failure, so a broker outage never
// blocks startup.  Errors are logged and returned; callers treat publishing
// as best-effort.
type Publisher struct {
    url   string
    queue string

    mu   sync.Mutex
    conn *amqp.Connection
    ch   *amqp.Channel
}

// NewPublisher returns a Publisher for the given broker URL and queue name.
func NewPublisher(url, queue string) *Publisher {
    return &Publisher{url: url, queue: queue}
}

// Publish marshals ev and publishes it as a persistent message on the
// default exchange with the queue name as routing key.  EventID and
// OccurredAt are filled in when empty.
func (p *Publisher) Publish(ctx context.Context, ev BookingEvent) error {
    if ev.EventID == "" {
        ev.EventID = uuid.NewString()
    }
    if ev.OccurredAt == "" {
        ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
    }
    body, err := json.Marshal(ev)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    p.mu.Lock()
    defer p.mu.Unlock()

    ch, err := p.channelLocked()
    if err != nil {
        log.Printf("rabbitmq: %v", err)
        return err
    }
    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        MessageId:    ev.EventID,
        Type:         ev.Type,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        p.resetLocked()
        return err
    }
    return nil
}

// channelLocked returns an open channel, dialing and declaring the queue if
// needed.  p.mu must be held.
func (p *Publisher) channelLocked() (*amqp.Channel, error) {
    if p.ch != nil && !p.ch.IsClosed() {
        return p.ch, nil
    }
    p.resetLocked()
    conn, err := amqp.Dial(p.url)
    if err != nil {
        return nil, fmt.Errorf("dial failed: %w", err)
    }
    ch, err := conn.Channel()
    if err != nil {
        _ = conn.Close()
        return nil, fmt.Errorf("channel open failed: %w", err)
    }
    // Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
        _ = ch.Close()
        _ = conn.Close()
        return nil, fmt.Errorf("queue declare failed: %w", err)
    }
    p.conn, p.ch = conn, ch
    return ch, nil
}

func (p *Publisher) resetLocked() {
    if p.ch != nil {
        _ = p.ch.Close()
        p.ch = nil
    }
    if p.conn != nil {
        _ = p.conn.Close()
        p.conn = nil
    }
}

// Close releases the broker connection.
func (p *Publisher) Close() error {
    p.mu.Lock()
    defer p.mu.Unlock()
    p.resetLocked()
    return nil
}

// NopPublisher discards events.  It is used when EVENTS_ENABLED is false.
type NopPublisher struct{}

// Publish implements the publisher contract without doing anything.
func (NopPublisher) Publish(context.Context, BookingEvent) error { return nil }
