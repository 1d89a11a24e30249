package worker

import (
	"context"
	"testing"

	"github.com/ventas-next/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleVerifyCodeEmailSkipsEmptyPayload(t *testing.T) {
	consumer := &Consumer{}
	task := asynq.NewTask(queue.TaskVerifyCodeEmail, []byte(`{"email":"","code":""}`))

	if err := consumer.handleVerifyCodeEmail(context.Background(), task); err != nil {
		t.Fatalf("expected empty payload to be skipped, got %v", err)
	}
}

func TestHandleVerifyCodeEmailRejectsBadJSON(t *testing.T) {
	consumer := &Consumer{}
	task := asynq.NewTask(queue.TaskVerifyCodeEmail, []byte(`{not-json`))

	if err := consumer.handleVerifyCodeEmail(context.Background(), task); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestHandleOrderStatusEmailSkipsZeroOrderID(t *testing.T) {
	consumer := &Consumer{}
	task := asynq.NewTask(queue.TaskOrderStatusEmail, []byte(`{"order_id":0,"status":"new"}`))

	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("expected zero order id to be skipped, got %v", err)
	}
}
