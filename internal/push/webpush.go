// Package push wraps the web-push protocol behind a small transport
// interface so delivery and subscription pruning can be tested without a
// real push service.
package push

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/lucasrosa/lembretes-api/internal/domain"
)

const defaultSubject = "mailto:admin@lembretes.com"

// VAPID holds the credential used to authenticate outgoing push messages.
type VAPID struct {
	Subject    string
	PublicKey  string
	PrivateKey string
}

// NewVAPID validates the credential at startup so misconfiguration fails
// before any send is attempted. A bare subject containing "@" is coerced to
// a mailto: address; anything else that is not mailto: or http(s):// is
// rejected.
func NewVAPID(subject, publicKey, privateKey string) (VAPID, error) {
	if publicKey == "" || privateKey == "" {
		return VAPID{}, errors.New("VAPID keys are not configured")
	}

	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = defaultSubject
	}
	lower := strings.ToLower(subject)
	if !strings.HasPrefix(lower, "mailto:") &&
		!strings.HasPrefix(lower, "http://") &&
		!strings.HasPrefix(lower, "https://") {
		if !strings.Contains(subject, "@") {
			return VAPID{}, fmt.Errorf("invalid VAPID subject %q: use a mailto: address or an http(s) URL", subject)
		}
		subject = "mailto:" + subject
	}

	return VAPID{Subject: subject, PublicKey: publicKey, PrivateKey: privateKey}, nil
}

// Transport delivers one payload to one subscription. It returns the push
// service's HTTP status code; err is reserved for transport-level failures
// where no status was obtained.
type Transport interface {
	Send(ctx context.Context, sub *domain.PushSubscription, payload []byte) (int, error)
}

type webPushTransport struct {
	vapid VAPID
	ttl   int
}

func NewWebPushTransport(vapid VAPID) *webPushTransport {
	return &webPushTransport{vapid: vapid, ttl: 60}
}

func (t *webPushTransport) Send(ctx context.Context, sub *domain.PushSubscription, payload []byte) (int, error) {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      t.vapid.Subject,
		VAPIDPublicKey:  t.vapid.PublicKey,
		VAPIDPrivateKey: t.vapid.PrivateKey,
		TTL:             t.ttl,
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}
