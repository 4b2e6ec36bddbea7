package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/logger"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)
	return &asynq.TaskInfo{ID: "t-1", Type: task.Type()}, nil
}

type fakeCustomers struct {
	records []*domain.CustomerRecord
	err     error
}

func (f *fakeCustomers) Upsert(_ context.Context, record *domain.CustomerRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

func testRecord() *domain.CustomerRecord {
	return &domain.CustomerRecord{
		Name:          "Wang Xiao-ming",
		Phone:         "0912-345-678",
		Email:         "wang@example.com",
		LastBookingAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestCustomerUpsertTask_RoundTrip(t *testing.T) {
	task, err := NewCustomerUpsertTask(testRecord())
	require.NoError(t, err)
	assert.Equal(t, TypeCustomerUpsert, task.Type())

	record, err := ParseCustomerUpsert(task)
	require.NoError(t, err)
	assert.Equal(t, testRecord(), record)
}

func TestParseCustomerUpsert_Invalid(t *testing.T) {
	_, err := ParseCustomerUpsert(asynq.NewTask(TypeCustomerUpsert, []byte("{")))
	assert.ErrorIs(t, err, ErrPayload)

	_, err = ParseCustomerUpsert(asynq.NewTask(TypeCustomerUpsert, []byte(`{"name":"x"}`)))
	assert.ErrorIs(t, err, ErrPayload)
}

func TestCustomerRecorder_Record(t *testing.T) {
	enq := &fakeEnqueuer{}
	rec := NewCustomerRecorder(enq, "customers", 3, 30*time.Second)

	require.NoError(t, rec.Record(context.Background(), testRecord()))
	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TypeCustomerUpsert, enq.tasks[0].Type())
	assert.Len(t, enq.opts[0], 3)
}

func TestCustomerRecorder_EnqueueError(t *testing.T) {
	enq := &fakeEnqueuer{err: errors.New("redis down")}
	rec := NewCustomerRecorder(enq, "", 3, 0)

	err := rec.Record(context.Background(), testRecord())
	assert.ErrorIs(t, err, ErrEnqueue)
}

func TestHandleCustomerUpsert(t *testing.T) {
	customers := &fakeCustomers{}
	handler := HandleCustomerUpsert(customers, logger.NewNop())

	task, err := NewCustomerUpsertTask(testRecord())
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))
	require.Len(t, customers.records, 1)
	assert.Equal(t, "0912-345-678", customers.records[0].Phone)
}

func TestHandleCustomerUpsert_BadPayloadSkipsRetry(t *testing.T) {
	handler := HandleCustomerUpsert(&fakeCustomers{}, logger.NewNop())

	err := handler(context.Background(), asynq.NewTask(TypeCustomerUpsert, []byte("not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.ErrorIs(t, err, ErrPayload)
}

func TestHandleCustomerUpsert_RepositoryErrorRetries(t *testing.T) {
	handler := HandleCustomerUpsert(&fakeCustomers{err: errors.New("db down")}, logger.NewNop())

	task, err := NewCustomerUpsertTask(testRecord())
	require.NoError(t, err)

	err = handler(context.Background(), task)
	assert.ErrorIs(t, err, ErrHandle)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
