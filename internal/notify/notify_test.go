package notify

import (
	"context"
	"net/smtp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
)

func eventFixture(kind domain.EventKind) domain.Event {
	return domain.Event{
		Kind:      kind,
		RequestID: uuid.New(),
		RideID:    uuid.New(),
		Passenger: domain.Identity{ID: uuid.New(), Email: "passenger@example.com"},
		Host:      domain.Identity{ID: uuid.New(), Email: "host@example.com"},
		Ride: domain.Ride{
			Origin:      "Austin",
			Destination: "Dallas",
			DepartsAt:   time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC),
		},
	}
}

func TestSubject_PerKind(t *testing.T) {
	assert.Equal(t, "Your seat is confirmed!", Subject(eventFixture(domain.EventApproved)))
	assert.Equal(t, "Update on your ride request", Subject(eventFixture(domain.EventRejected)))
}

func TestBody_MentionsRoute(t *testing.T) {
	approved := Body(eventFixture(domain.EventApproved))
	assert.Contains(t, approved, "Austin")
	assert.Contains(t, approved, "Dallas")
	assert.Contains(t, approved, "approved")

	rejected := Body(eventFixture(domain.EventRejected))
	assert.Contains(t, rejected, "declined")
	assert.Contains(t, rejected, "request another seat")
}

func TestMailer_Notify_SendsToPassenger(t *testing.T) {
	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  []byte
	)
	m := NewMailer("smtp.example.com", "587", "noreply@example.com", "hunter2")
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := m.Notify(context.Background(), eventFixture(domain.EventApproved))

	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"passenger@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Your seat is confirmed!")
	assert.Contains(t, string(gotMsg), "To: passenger@example.com")
}

func TestMailer_Notify_CancelledContext(t *testing.T) {
	m := NewMailer("smtp.example.com", "587", "noreply@example.com", "hunter2")
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called on a cancelled context")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Notify(ctx, eventFixture(domain.EventApproved))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogNotifier_NeverFails(t *testing.T) {
	n := NewLogNotifier(nil)

	assert.NoError(t, n.Notify(context.Background(), eventFixture(domain.EventRejected)))
}
