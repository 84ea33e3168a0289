package outbox

import (
	"context"
	"testing"

	"github.com/funaab-ict/clearance-service/internal/core/ports"
	"github.com/funaab-ict/clearance-service/test/mocks"
)

func TestRelay_DispatchClearanceUpdated(t *testing.T) {
	publisher := mocks.NewMockPublisher()
	relay := NewRelay(nil, "", publisher)

	payload := []byte(`{"matric_no":"20201234","department":"Library","status":"approved","updated_by":"librarian"}`)
	if err := relay.dispatch(context.Background(), "evt-1", ports.EventClearanceUpdated, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(publisher.ClearanceUpdatedCalls) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(publisher.ClearanceUpdatedCalls))
	}
	evt := publisher.ClearanceUpdatedCalls[0]
	if evt.MatricNo != "20201234" || evt.Department != "Library" || evt.UpdatedBy != "librarian" {
		t.Errorf("unexpected event: %+v", evt)
	}
}

func TestRelay_DispatchStudentCreated(t *testing.T) {
	publisher := mocks.NewMockPublisher()
	relay := NewRelay(nil, "", publisher)

	payload := []byte(`{"student_id":"stu-1","matric_no":"20201234","full_name":"Ada Bello"}`)
	if err := relay.dispatch(context.Background(), "evt-2", ports.EventStudentCreated, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(publisher.StudentCreatedCalls) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(publisher.StudentCreatedCalls))
	}
}

func TestRelay_DispatchSwallowsBadRows(t *testing.T) {
	publisher := mocks.NewMockPublisher()
	relay := NewRelay(nil, "", publisher)
	ctx := context.Background()

	// Malformed payloads and unknown types must not error, or the row would
	// be retried forever.
	if err := relay.dispatch(ctx, "evt-3", ports.EventClearanceUpdated, []byte("{not json")); err != nil {
		t.Errorf("bad payload: expected nil error, got %v", err)
	}
	if err := relay.dispatch(ctx, "evt-4", "unknown.type", []byte(`{}`)); err != nil {
		t.Errorf("unknown type: expected nil error, got %v", err)
	}
	if len(publisher.ClearanceUpdatedCalls)+len(publisher.StudentCreatedCalls) != 0 {
		t.Error("nothing may be published for bad rows")
	}
}

func TestRelay_DispatchPropagatesPublishFailure(t *testing.T) {
	publisher := mocks.NewMockPublisher()
	publisher.PublishError = context.DeadlineExceeded
	relay := NewRelay(nil, "", publisher)

	payload := []byte(`{"matric_no":"20201234"}`)
	err := relay.dispatch(context.Background(), "evt-5", ports.EventClearanceUpdated, payload)
	if err == nil {
		t.Error("publish failures must propagate so the row stays unprocessed")
	}
}
