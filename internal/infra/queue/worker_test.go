package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyLeadCaptured(ctx context.Context, event LeadEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type fakeAck struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAck) Ack(bool) error { f.acked = true; return nil }
func (f *fakeAck) Nack(_ bool, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func TestWorker_Process_NotifiesCapturedLead(t *testing.T) {
	notifier := new(MockNotifier)
	w := NewWorker(nil, notifier)

	event := LeadEvent{Type: EventLeadCaptured, LeadID: "l1", Email: "ana@example.com"}
	body, _ := json.Marshal(event)

	notifier.On("NotifyLeadCaptured", mock.Anything, mock.MatchedBy(func(e LeadEvent) bool {
		return e.LeadID == "l1" && e.Email == "ana@example.com"
	})).Return(nil)

	ack := &fakeAck{}
	w.Process(context.Background(), body, ack)

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
	notifier.AssertExpectations(t)
}

func TestWorker_Process_RejectsMalformedJSON(t *testing.T) {
	notifier := new(MockNotifier)
	w := NewWorker(nil, notifier)

	ack := &fakeAck{}
	w.Process(context.Background(), []byte("{not json"), ack)

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
	notifier.AssertNotCalled(t, "NotifyLeadCaptured", mock.Anything, mock.Anything)
}

func TestWorker_Process_NotifierFailureGoesToDLQ(t *testing.T) {
	notifier := new(MockNotifier)
	w := NewWorker(nil, notifier)

	body, _ := json.Marshal(LeadEvent{Type: EventLeadCaptured, LeadID: "l2"})
	notifier.On("NotifyLeadCaptured", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	ack := &fakeAck{}
	w.Process(context.Background(), body, ack)

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
}

func TestWorker_Process_AcksOtherEvents(t *testing.T) {
	notifier := new(MockNotifier)
	w := NewWorker(nil, notifier)

	body, _ := json.Marshal(LeadEvent{Type: EventLeadConverted, LeadID: "l3"})
	ack := &fakeAck{}
	w.Process(context.Background(), body, ack)

	assert.True(t, ack.acked)
	notifier.AssertNotCalled(t, "NotifyLeadCaptured", mock.Anything, mock.Anything)
}
