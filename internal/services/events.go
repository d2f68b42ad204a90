package services

// EventPublisher is the slice of the message broker client the services
// need. Publishing is best-effort: failures are logged by callers and never
// fail the request.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}
