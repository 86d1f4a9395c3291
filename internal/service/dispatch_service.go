package service

import (
	"context"
	"encoding/json"

	"mindwel-be/internal/constant"
	"mindwel-be/internal/dto"
	"mindwel-be/internal/pkg/logger"
	"mindwel-be/internal/pkg/mailer"
	"mindwel-be/internal/websocket"
	pkgEvents "mindwel-be/pkg/events"
	pktNats "mindwel-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IDispatchService drains the in-process handoff queue and fans each
// notification out to every delivery channel. Delivery is best effort per
// channel; one failing sink never blocks the others.
type IDispatchService interface {
	Consume(ctx context.Context) error
}

type dispatchService struct {
	pubSub    *gochannel.GoChannel
	publisher *pktNats.Publisher
	hub       *websocket.Hub
	mail      mailer.IEmailService
	alertTo   string
	logger    logger.ILogger
}

func NewDispatchService(
	pubSub *gochannel.GoChannel,
	publisher *pktNats.Publisher,
	hub *websocket.Hub,
	mail mailer.IEmailService,
	alertTo string,
	log logger.ILogger,
) IDispatchService {
	return &dispatchService{
		pubSub:    pubSub,
		publisher: publisher,
		hub:       hub,
		mail:      mail,
		alertTo:   alertTo,
		logger:    log,
	}
}

func (s *dispatchService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, constant.HandoffDispatchTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *dispatchService) processMessage(ctx context.Context, msg *message.Message) {
	var notification dto.HandoffNotification
	if err := json.Unmarshal(msg.Payload, &notification); err != nil {
		s.logger.Error("DispatchService", "Failed to unmarshal handoff notification", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed payload, retrying cannot help
		return
	}

	s.deliverToBus(ctx, notification)
	s.deliverToFeed(notification)
	s.deliverByEmail(notification)

	msg.Ack()
}

func (s *dispatchService) deliverToBus(ctx context.Context, n dto.HandoffNotification) {
	if s.publisher == nil {
		return
	}
	evt := pkgEvents.NewHandoffRequested(n.HandoffId.String(), n.SessionId.String(), n.Urgency, n.Region, n.Triggers)
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Error("DispatchService", "Failed to publish handoff event", map[string]interface{}{"error": err.Error()})
	}
}

func (s *dispatchService) deliverToFeed(n dto.HandoffNotification) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(n)
}

func (s *dispatchService) deliverByEmail(n dto.HandoffNotification) {
	if s.mail == nil || s.alertTo == "" {
		return
	}
	// Only urgent+ handoffs page a counselor by email; the feed carries all.
	if n.Urgency != "urgent" && n.Urgency != "emergency" {
		return
	}
	if err := s.mail.SendHandoffAlert(s.alertTo, n); err != nil {
		s.logger.Error("DispatchService", "Failed to send counselor alert email", map[string]interface{}{"error": err.Error()})
	}
}
